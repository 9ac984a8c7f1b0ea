package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateNewPereval - письмо модераторам о новой записи
const TemplateNewPereval = "new_pereval"

const newPerevalTemplate = `<p>Новая запись о перевале ожидает модерации.</p>
<table>
<tr><td>ID</td><td>{{.ID}}</td></tr>
<tr><td>Название</td><td>{{.BeautyTitle}} {{.Title}}</td></tr>
<tr><td>Автор</td><td>{{.Email}}</td></tr>
<tr><td>Координаты</td><td>{{.Latitude}}, {{.Longitude}}, {{.Height}} м</td></tr>
<tr><td>Фото</td><td>{{.Images}}</td></tr>
</table>`

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager - менеджер со встроенными шаблонами уведомлений
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	if err := tm.AddTemplate(TemplateNewPereval, newPerevalTemplate); err != nil {
		return nil, err
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
