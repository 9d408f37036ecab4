package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/agentstation/orgmap/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	err := errors.NewNotFoundError("company", "Acme Corp")
	if !errors.IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Error("expected errors.Is match on sentinel")
	}
	want := `company "Acme Corp" not found`
	if err.Error() != want {
		t.Errorf("unexpected message %q, want %q", err.Error(), want)
	}
}

func TestAPIErrorUnavailable(t *testing.T) {
	err := errors.NewAPIError("wikidata", 503, "service unavailable")
	if !errors.IsSourceUnavailable(err) {
		t.Error("expected 5xx to map to ErrSourceUnavailable")
	}
	clientErr := errors.NewAPIError("wikidata", 404, "missing")
	if errors.IsSourceUnavailable(clientErr) {
		t.Error("4xx must not map to ErrSourceUnavailable")
	}
}

func TestSourceErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := errors.NewSourceError("markets", "", inner)
	if !stderrors.Is(err, inner) {
		t.Error("expected Unwrap chain to reach inner error")
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if errors.WrapAPI("wikipedia", 500, nil) != nil {
		t.Error("WrapAPI(nil) must be nil")
	}
	if errors.WrapParse("json", "wikidata", nil) != nil {
		t.Error("WrapParse(nil) must be nil")
	}
}
