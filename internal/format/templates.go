package format

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// contentPlaceholder marks where rendered card content lands in a template.
const contentPlaceholder = "{content}"

// BuiltinTemplates maps template names to their HTML. User templates in the
// templates directory shadow builtins of the same name.
var BuiltinTemplates = map[string]string{
	"code": `<div style="
background:#272822; color:#f8f8f2; padding:16px 20px;
border-radius:12px; font-family:'Fira Code','SF Mono',Consolas,
'Liberation Mono',Menlo,monospace; font-size:18px;
line-height:1.6; white-space:pre-wrap; word-wrap:break-word;
">{content}</div>`,
	"gradient": themedTemplate("linear-gradient(135deg, #667eea 0%, #764ba2 100%)", "rgba(102, 126, 234, 0.3)", "#ffffff"),
	"dark":     themedTemplate("linear-gradient(135deg, #1a1a2e 0%, #16213e 100%)", "rgba(0, 0, 0, 0.4)", "#f0f0f0"),
	"light":    themedTemplate("linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%)", "rgba(0, 0, 0, 0.1)", "#2d3748"),
	"blue":     themedTemplate("linear-gradient(135deg, #0093E9 0%, #80D0C7 100%)", "rgba(0, 147, 233, 0.3)", "#ffffff"),
	"purple":   themedTemplate("linear-gradient(135deg, #8B5CF6 0%, #D946EF 100%)", "rgba(139, 92, 246, 0.3)", "#ffffff"),
	"green":    themedTemplate("linear-gradient(135deg, #11998e 0%, #38ef7d 100%)", "rgba(17, 153, 142, 0.3)", "#ffffff"),
	"orange":   themedTemplate("linear-gradient(135deg, #F97316 0%, #FBBF24 100%)", "rgba(249, 115, 22, 0.3)", "#ffffff"),
	"plain":    "{content}",
}

// Themes are the card container styles eligible for random selection.
var Themes = []string{"gradient", "dark", "light", "blue", "purple", "green", "orange"}

func themedTemplate(background, shadow, color string) string {
	return fmt.Sprintf(`<div style="
display: flex; align-items: center; justify-content: center;
min-height: 200px; padding: 40px 30px;
background: %s;
border-radius: 16px; box-shadow: 0 10px 40px %s;
">
<div style="
color: %s;
font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif;
font-size: 28px; font-weight: 600; text-align: center;
line-height: 1.4; text-shadow: 0 2px 4px rgba(0,0,0,0.1);
">{content}</div>
</div>`, background, shadow, color)
}

// TemplateStore resolves templates by name, preferring user files in the
// templates directory over the builtin set.
type TemplateStore struct {
	dir string
}

// NewTemplateStore builds a store rooted at dir. An empty dir disables user
// templates.
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Dir returns the user template directory.
func (s *TemplateStore) Dir() string { return s.dir }

// Get returns the template HTML for name.
func (s *TemplateStore) Get(name string) (string, error) {
	if s.dir != "" {
		data, err := os.ReadFile(s.userPath(name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
	}
	if tpl, ok := BuiltinTemplates[name]; ok {
		return tpl, nil
	}
	return "", fmt.Errorf("template not found: %s", name)
}

// List maps every available template name to "builtin" or the user file path.
func (s *TemplateStore) List() map[string]string {
	result := make(map[string]string, len(BuiltinTemplates))
	for name := range BuiltinTemplates {
		result[name] = "builtin"
	}
	if s.dir != "" {
		matches, err := filepath.Glob(filepath.Join(s.dir, "*.template"))
		if err == nil {
			for _, match := range matches {
				name := strings.TrimSuffix(filepath.Base(match), ".template")
				result[name] = match
			}
		}
	}
	return result
}

// Names returns all template names sorted alphabetically.
func (s *TemplateStore) Names() []string {
	listed := s.List()
	names := make([]string, 0, len(listed))
	for name := range listed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes a user template. The HTML must carry the content placeholder.
func (s *TemplateStore) Save(name, html string) (string, error) {
	if s.dir == "" {
		return "", fmt.Errorf("no templates directory configured")
	}
	if !strings.Contains(html, contentPlaceholder) {
		return "", fmt.Errorf("template must contain the %s placeholder", contentPlaceholder)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure templates directory: %w", err)
	}
	path := s.userPath(name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write template %s: %w", name, err)
	}
	return path, nil
}

// Delete removes a user template. Builtins cannot be deleted; deleting an
// absent template reports false.
func (s *TemplateStore) Delete(name string) (bool, error) {
	if s.dir == "" {
		return false, nil
	}
	err := os.Remove(s.userPath(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("delete template %s: %w", name, err)
}

// ExportBuiltin copies a builtin template into the user directory so it can
// be edited.
func (s *TemplateStore) ExportBuiltin(name string) (string, error) {
	tpl, ok := BuiltinTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown builtin template: %s", name)
	}
	return s.Save(name, tpl)
}

func (s *TemplateStore) userPath(name string) string {
	return filepath.Join(s.dir, name+".template")
}

// render substitutes escaped content into a template.
func render(template, content string) string {
	return strings.ReplaceAll(template, contentPlaceholder, escapeHTML(content))
}

// renderRaw substitutes already-safe HTML into a template without escaping.
func renderRaw(template, html string) string {
	return strings.ReplaceAll(template, contentPlaceholder, html)
}

func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
