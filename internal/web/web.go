// Package web holds the HTML templates and static assets of the admin UI.
// They are embedded into the binary; TEMPLATES_PATH and STATIC_PATH point the
// server at on-disk copies instead, which is handy while editing them.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/mrlokans/library-manager/internal/entities"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// FuncMap is available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date": func(d datatypes.Date) string {
			return time.Time(d).Format(entities.DateLayout)
		},
		"optDate": entities.FormatDate,
		"money":   FormatMoney,
		"dict":    dict,
	}
}

// dict builds a map from alternating keys and values, for passing several
// values into a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// FormatMoney drops the fraction for whole amounts: 25 renders as "25", 7.5 as "7.5".
func FormatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// LoadTemplates parses the page templates from dir, or the embedded copies
// when dir is empty.
func LoadTemplates(dir string) (*template.Template, error) {
	var source fs.FS = templatesFS
	pattern := "templates/*.html"
	if dir != "" {
		source = os.DirFS(dir)
		pattern = "*.html"
	}
	return template.New("").Funcs(FuncMap()).ParseFS(source, pattern)
}

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
