package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Key string

const (
	KeySkillName          Key = "SKILL_NAME"
	KeySorry              Key = "SORRY"
	KeyCanteenClosedToday Key = "CANTEEN_CLOSED_TODAY"
	KeyHelpMessage        Key = "HELP_MESSAGE"
	KeyHelpReprompt       Key = "HELP_REPROMPT"
	KeyStopMessage        Key = "STOP_MESSAGE"
	KeyFor                Key = "FOR"
	KeyAsWellAs           Key = "AS_WELL_AS"
	KeyEnjoyYourMeal      Key = "ENJOY_YOUR_MEAL"
	KeyTodayInTheCanteen  Key = "TODAY_IN_THE_CANTEEN"
)

// Keys lists every message a locale file must define.
var Keys = []Key{
	KeySkillName,
	KeySorry,
	KeyCanteenClosedToday,
	KeyHelpMessage,
	KeyHelpReprompt,
	KeyStopMessage,
	KeyFor,
	KeyAsWellAs,
	KeyEnjoyYourMeal,
	KeyTodayInTheCanteen,
}

const DefaultLocale = "en-US"

//go:embed locales/*.yaml
var bundled embed.FS

// Translator looks up a message for one locale.
type Translator func(Key) string

type Strings map[Key]string

// Catalog maps locale tags to their strings. It is built once and never
// mutated afterwards.
type Catalog struct {
	locales  map[string]Strings
	fallback string
}

// Bundled loads the locale files shipped with the binary.
func Bundled(fallback string) (*Catalog, error) {
	sub, err := fs.Sub(bundled, "locales")
	if err != nil {
		return nil, fmt.Errorf("opening bundled locales: %w", err)
	}
	return Load(sub, fallback)
}

// Load reads every <tag>.yaml file in fsys. Each file must define all Keys.
func Load(fsys fs.FS, fallback string) (*Catalog, error) {
	if fallback == "" {
		fallback = DefaultLocale
	}

	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing locale files: %w", err)
	}

	locales := make(map[string]Strings, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		var strs Strings
		if err := yaml.Unmarshal(data, &strs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		tag := strings.TrimSuffix(path.Base(name), ".yaml")
		if missing := strs.missing(); len(missing) > 0 {
			return nil, fmt.Errorf("locale %s is missing keys: %s", tag, strings.Join(missing, ", "))
		}
		locales[tag] = strs
	}

	return New(locales, fallback)
}

// New builds a catalog from in-memory tables.
func New(locales map[string]Strings, fallback string) (*Catalog, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("no locales defined")
	}
	if _, ok := locales[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q not defined", fallback)
	}

	c := &Catalog{
		locales:  make(map[string]Strings, len(locales)),
		fallback: fallback,
	}
	for tag, strs := range locales {
		cp := make(Strings, len(strs))
		for k, v := range strs {
			cp[k] = v
		}
		c.locales[tag] = cp
	}
	return c, nil
}

// Tags returns the defined locale tags, sorted.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.locales))
	for tag := range c.locales {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Resolve picks the locale used for tag: an exact match, then the first
// locale sharing its language ("de-AT" -> "de-DE"), then the fallback.
func (c *Catalog) Resolve(tag string) string {
	if _, ok := c.locales[tag]; ok {
		return tag
	}

	lang := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
	if lang != "" {
		for _, candidate := range c.Tags() {
			if strings.ToLower(strings.SplitN(candidate, "-", 2)[0]) == lang {
				return candidate
			}
		}
	}

	return c.fallback
}

func (c *Catalog) Translator(tag string) Translator {
	strs := c.locales[c.Resolve(tag)]
	fallback := c.locales[c.fallback]
	return func(k Key) string {
		if v, ok := strs[k]; ok {
			return v
		}
		if v, ok := fallback[k]; ok {
			return v
		}
		return string(k)
	}
}

func (s Strings) missing() []string {
	var missing []string
	for _, k := range Keys {
		if _, ok := s[k]; !ok {
			missing = append(missing, string(k))
		}
	}
	return missing
}
