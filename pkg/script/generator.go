package script

import (
	"bytes"
	_ "embed"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	slugLength = 40
	dateFormat = "2006-01-02 15:04:05.000000"
)

var (
	//go:embed embed/script.py.tmpl
	defaultTemplate string

	scriptTemplate = template.Must(template.New("script").Funcs(template.FuncMap{
		"join":    strings.Join,
		"literal": quote,
		"pointer": Literal,
	}).Parse(defaultTemplate))

	slugWords = regexp.MustCompile(`\w+`)
)

type (
	// Generator renders new, empty revision scripts. Nothing is written to
	// disk; callers decide where the returned script goes.
	Generator struct {
		newID func() string
		now   func() time.Time
	}

	// GeneratorOption configures a Generator.
	GeneratorOption func(*Generator)

	templateData struct {
		ID         string
		Parents    []string
		Message    string
		CreateDate string
	}
)

// WithIDFunc overrides how revision ids are created.
func WithIDFunc(fn func() string) GeneratorOption {
	return func(g *Generator) { g.newID = fn }
}

// WithClock overrides the clock used for the Create Date header.
func WithClock(fn func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = fn }
}

// NewGenerator creates a Generator producing alembic style 12 character
// hexadecimal revision ids.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{newID: NewID, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewID returns a fresh revision id: the last 12 hex digits of a random UUID.
func NewID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[len(hex)-12:]
}

// Generate renders a script whose upgrade and downgrade functions are the
// `pass` placeholder. The returned Script's Path is the alembic file name
// `<id>_<slug>.py`.
//
// Example:
//
//	s, err := script.NewGenerator().Generate("add post table", []string{"70421ef63b0d"})
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(s.Path) // e.g. 1f2e3d4c5b6a_add_post_table.py
func (g *Generator) Generate(message string, parents []string) (*Script, error) {
	if parents == nil {
		parents = []string{}
	}

	data := templateData{
		ID:         g.newID(),
		Parents:    parents,
		Message:    message,
		CreateDate: g.now().Format(dateFormat),
	}

	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to render revision template")
	}

	return &Script{
		ID:      data.ID,
		Parents: parents,
		Message: message,
		Path:    Filename(data.ID, message),
		Source:  buf.Bytes(),
	}, nil
}

// Filename returns the alembic file name for a revision.
func Filename(id, message string) string {
	return id + "_" + Slugify(message) + ".py"
}

// Slugify turns a revision message into the slug alembic uses in file names:
// the words joined by underscores, lower cased and cut at a word boundary
// after 40 characters.
func Slugify(message string) string {
	slug := strings.ToLower(strings.Join(slugWords.FindAllString(message, -1), "_"))
	if len(slug) > slugLength {
		slug = slug[:slugLength]
		if idx := strings.LastIndex(slug, "_"); idx >= 0 {
			slug = slug[:idx]
		}
		slug += "_"
	}

	return slug
}
