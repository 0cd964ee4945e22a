// Package schema declares the static input/output contracts for every LLM
// task the service performs. Schemas are configuration, not per-request
// state: they are loaded and validated once at process start.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Task kind names, matching entries in schemas.yaml.
const (
	TaskSmartSearch    = "smart_search"
	TaskSummary        = "summary"
	TaskQA             = "qa"
	TaskRecommendation = "recommendation"
	TaskComparison     = "comparison"
	TaskShoppingGuide  = "shopping_guide"
)

//go:embed schemas.yaml
var defaultSchemas []byte

// Field is one named input or output of a task.
type Field struct {
	Name string `yaml:"name"`
	Desc string `yaml:"desc"`
}

// Task pairs an instruction with an ordered list of named inputs and exactly
// one named output. Template, when present, is the full prompt with {input}
// placeholders; otherwise the prompt is built from the bound fields.
type Task struct {
	Name        string  `yaml:"name"`
	Instruction string  `yaml:"instruction"`
	Inputs      []Field `yaml:"inputs"`
	Output      Field   `yaml:"output"`
	Template    string  `yaml:"template"`
}

// Registry holds all loaded task schemas.
type Registry struct {
	tasks map[string]Task
}

type schemaFile struct {
	Tasks []Task `yaml:"tasks"`
}

// Load parses and validates a schema document.
func Load(data []byte) (*Registry, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse schemas: %w", err)
	}
	if len(file.Tasks) == 0 {
		return nil, fmt.Errorf("schemas: no tasks defined")
	}

	tasks := make(map[string]Task, len(file.Tasks))
	for _, task := range file.Tasks {
		if err := validateTask(task); err != nil {
			return nil, fmt.Errorf("schemas: task %q: %w", task.Name, err)
		}
		if _, exists := tasks[task.Name]; exists {
			return nil, fmt.Errorf("schemas: duplicate task %q", task.Name)
		}
		tasks[task.Name] = task
	}
	return &Registry{tasks: tasks}, nil
}

// LoadFile loads schemas from path, or the embedded defaults when path is
// empty.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Load(defaultSchemas)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schemas %s: %w", path, err)
	}
	return Load(data)
}

// Task returns the schema for a task kind.
func (r *Registry) Task(name string) (Task, error) {
	task, ok := r.tasks[name]
	if !ok {
		return Task{}, fmt.Errorf("unknown task schema %q", name)
	}
	return task, nil
}

func validateTask(task Task) error {
	if strings.TrimSpace(task.Name) == "" {
		return fmt.Errorf("missing name")
	}
	if len(task.Inputs) == 0 {
		return fmt.Errorf("needs at least one input field")
	}
	seen := make(map[string]bool, len(task.Inputs))
	for _, in := range task.Inputs {
		if strings.TrimSpace(in.Name) == "" {
			return fmt.Errorf("input field with empty name")
		}
		if seen[in.Name] {
			return fmt.Errorf("duplicate input field %q", in.Name)
		}
		seen[in.Name] = true
	}
	if strings.TrimSpace(task.Output.Name) == "" {
		return fmt.Errorf("missing output field")
	}
	if task.Instruction == "" && task.Template == "" {
		return fmt.Errorf("needs an instruction or a template")
	}
	for _, placeholder := range placeholders(task.Template) {
		if !seen[placeholder] {
			return fmt.Errorf("template references unknown input {%s}", placeholder)
		}
	}
	return nil
}

// Render binds the named inputs into the task's prompt text. Every declared
// input must be bound; unknown inputs are rejected.
func (t Task) Render(inputs map[string]string) (string, error) {
	declared := make(map[string]bool, len(t.Inputs))
	for _, in := range t.Inputs {
		declared[in.Name] = true
		if _, ok := inputs[in.Name]; !ok {
			return "", fmt.Errorf("task %q: input %q not bound", t.Name, in.Name)
		}
	}
	for name := range inputs {
		if !declared[name] {
			return "", fmt.Errorf("task %q: unknown input %q", t.Name, name)
		}
	}

	if t.Template != "" {
		prompt := t.Template
		for name, value := range inputs {
			prompt = strings.ReplaceAll(prompt, "{"+name+"}", value)
		}
		return prompt, nil
	}

	var b strings.Builder
	for i, in := range t.Inputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(in.Name)
		b.WriteString(": ")
		b.WriteString(inputs[in.Name])
	}
	return b.String(), nil
}

func placeholders(template string) []string {
	var names []string
	rest := template
	for {
		start := strings.Index(rest, "{")
		if start < 0 {
			return names
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return names
		}
		names = append(names, rest[start+1:start+end])
		rest = rest[start+end+1:]
	}
}
