package usecase

import (
	"context"
	"testing"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

func TestAnswerMatchesProductByNameFragment(t *testing.T) {
	completer := &fakeCompleter{completion: "Yes, the battery lasts 18 months."}
	uc := NewQAUseCase(&fakeCatalog{products: testProducts()}, completer, testSchemas(t))

	answer, err := uc.Answer(context.Background(), "How long does the battery last?", "mouse")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "Yes, the battery lasts 18 months." {
		t.Errorf("unexpected answer %q", answer)
	}

	if completer.lastTask.Name != schema.TaskQA {
		t.Errorf("expected qa task, got %q", completer.lastTask.Name)
	}
	if completer.lastInputs["question"] != "How long does the battery last?" {
		t.Errorf("question not passed through: %q", completer.lastInputs["question"])
	}
	if completer.lastInputs["product_info"] == "" {
		t.Error("product details not bound into the prompt")
	}
}

func TestAnswerUnknownProductIsNotAnError(t *testing.T) {
	completer := &fakeCompleter{completion: "irrelevant"}
	uc := NewQAUseCase(&fakeCatalog{products: testProducts()}, completer, testSchemas(t))

	answer, err := uc.Answer(context.Background(), "Is it waterproof?", "submarine")
	if err != nil {
		t.Fatalf("a lookup miss must not fail: %v", err)
	}
	if answer != "Product not found in database." {
		t.Errorf("unexpected miss answer %q", answer)
	}
	if completer.lastTask.Name != "" {
		t.Error("completer must not be called for an unknown product")
	}
}

func TestAnswerEmptyCompletion(t *testing.T) {
	uc := NewQAUseCase(&fakeCatalog{products: testProducts()}, &fakeCompleter{completion: ""}, testSchemas(t))

	answer, err := uc.Answer(context.Background(), "Anything?", "keyboard")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "No answer found." {
		t.Errorf("unexpected answer %q", answer)
	}
}

func TestAnswerPropagatesProviderFailure(t *testing.T) {
	completer := &fakeCompleter{err: domain.WrapError(domain.ErrProvider, "chat completion", context.DeadlineExceeded)}
	uc := NewQAUseCase(&fakeCatalog{products: testProducts()}, completer, testSchemas(t))

	if _, err := uc.Answer(context.Background(), "Anything?", "lamp"); !domain.IsKind(err, domain.ErrProvider) {
		t.Errorf("expected provider kind, got %v", err)
	}
}
