package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsOpAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	ctx := WithRequestID(context.Background(), "abc")

	func() (err error) {
		defer Time(ctx, "flights.List")(&err)
		return errors.New("boom")
	}()

	out := buf.String()
	for _, want := range []string{"req_id=abc", "op=flights.List", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestWithRequestIDGeneratesID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if RequestID(ctx) == "" {
		t.Fatal("expected a generated request id")
	}
}
