package schema

import (
	"strings"
	"testing"
)

func TestEmbeddedSchemasLoad(t *testing.T) {
	registry, err := LoadFile("")
	if err != nil {
		t.Fatalf("load embedded schemas: %v", err)
	}

	for _, name := range []string{
		TaskSmartSearch, TaskSummary, TaskQA,
		TaskRecommendation, TaskComparison, TaskShoppingGuide,
	} {
		task, err := registry.Task(name)
		if err != nil {
			t.Errorf("task %q: %v", name, err)
			continue
		}
		if task.Output.Name == "" {
			t.Errorf("task %q has no output field", name)
		}
	}

	if _, err := registry.Task("nonsense"); err == nil {
		t.Error("unknown task must be rejected")
	}
}

func TestLoadRejectsBrokenSchemas(t *testing.T) {
	cases := map[string]string{
		"no tasks":    "tasks: []",
		"no inputs":   "tasks:\n  - name: a\n    instruction: x\n    inputs: []\n    output: {name: out}",
		"no output":   "tasks:\n  - name: a\n    instruction: x\n    inputs: [{name: in}]",
		"no prompt":   "tasks:\n  - name: a\n    inputs: [{name: in}]\n    output: {name: out}",
		"duplicate":   "tasks:\n  - name: a\n    instruction: x\n    inputs: [{name: in}]\n    output: {name: out}\n  - name: a\n    instruction: x\n    inputs: [{name: in}]\n    output: {name: out}",
		"unknown ref": "tasks:\n  - name: a\n    template: \"{missing}\"\n    inputs: [{name: in}]\n    output: {name: out}",
	}
	for label, doc := range cases {
		if _, err := Load([]byte(doc)); err == nil {
			t.Errorf("%s: expected a validation error", label)
		}
	}
}

func TestRenderTemplateInterpolation(t *testing.T) {
	registry, err := LoadFile("")
	if err != nil {
		t.Fatalf("load embedded schemas: %v", err)
	}
	task, err := registry.Task(TaskSmartSearch)
	if err != nil {
		t.Fatalf("smart_search task: %v", err)
	}

	prompt, err := task.Render(map[string]string{
		"context": "Wireless Mouse (Electronics): silent clicks",
		"query":   "quiet mouse",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(prompt, "You are a helpful AI shopping assistant.") {
		t.Errorf("prompt missing persona line: %q", prompt)
	}
	if !strings.Contains(prompt, "Wireless Mouse (Electronics): silent clicks") {
		t.Errorf("context not interpolated: %q", prompt)
	}
	if !strings.Contains(prompt, "User query: quiet mouse") {
		t.Errorf("query not interpolated: %q", prompt)
	}
	if strings.Contains(prompt, "{context}") || strings.Contains(prompt, "{query}") {
		t.Errorf("unresolved placeholders left in prompt: %q", prompt)
	}
}

func TestRenderFieldBlocks(t *testing.T) {
	task := Task{
		Name:        "demo",
		Instruction: "do the thing",
		Inputs:      []Field{{Name: "first"}, {Name: "second"}},
		Output:      Field{Name: "out"},
	}

	prompt, err := task.Render(map[string]string{"first": "one", "second": "two"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if prompt != "first: one\n\nsecond: two" {
		t.Errorf("unexpected prompt %q", prompt)
	}
}

func TestRenderRejectsUnboundAndUnknownInputs(t *testing.T) {
	task := Task{
		Name:        "demo",
		Instruction: "do the thing",
		Inputs:      []Field{{Name: "first"}},
		Output:      Field{Name: "out"},
	}

	if _, err := task.Render(map[string]string{}); err == nil {
		t.Error("missing input must be rejected")
	}
	if _, err := task.Render(map[string]string{"first": "x", "extra": "y"}); err == nil {
		t.Error("unknown input must be rejected")
	}
}
