package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, logger.Level())
	}
	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}
	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	logger.Error("nothing")
	logger.With(slog.String("k", "v")).Info("nothing")

	if logger.Enabled(DefaultContextProvider(), LevelError) {
		t.Error("zero logger reports enabled")
	}
	if logger.Level() != DefaultLevel {
		t.Errorf("expected %v, got %v", DefaultLevel, logger.Level())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))

	logger.Trace("trace message")
	if !strings.Contains(buf.String(), "trace message") {
		t.Error("trace message not logged at Trace level")
	}
	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("expected level=TRACE, got: %s", buf.String())
	}

	buf.Reset()
	logger = Make(&buf, WithLevel(LevelError), WithPretty(false))
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelInfo))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}
		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf,
			WithFormat(FormatText), WithPretty(false), WithLevel(LevelInfo))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, `msg="test message"`) {
			t.Errorf("expected quoted message, got: %s", output)
		}
		if !strings.Contains(output, "key=value") {
			t.Errorf("expected key=value, got: %s", output)
		}
	})
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Warn("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got: %s", buf.String())
	}
}

func TestLogger_Wrap_OverridesOptions(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("base level changed to %v", base.Level())
	}
	if wrapped.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", wrapped.Level())
	}

	wrapped.Debug("from wrapped")
	if !strings.Contains(buf.String(), "from wrapped") {
		t.Error("wrapped logger did not write to the base output")
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
	}{
		{"plain", false},
		{"pretty", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithPretty(tt.pretty), WithTimeLayout("none")).
				With(slog.String("file", "Makefile"))
			logger.Warn("hello", slog.Int("line", 3))

			output := buf.String()
			for _, want := range []string{"file=", "Makefile", "line=", "3", "hello"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output, got: %s", want, output)
				}
			}
		})
	}
}

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("a", "1"), slog.String("b", "2"))
}

func TestPrettyHandler_GroupsAndValuers(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"))
	logger.Warn("grouped",
		slog.Any("v", valuer{}),
		slog.Any("err", errors.New("boom")),
		slog.Bool("ok", true),
	)

	output := buf.String()
	for _, want := range []string{"v.a=", "v.b=", "boom", "true", "WARN"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "time=") {
		t.Errorf("expected timestamps disabled, got: %s", output)
	}
}

func TestPrettyHandler_WithGroup_QualifiesKeys(t *testing.T) {
	var buf bytes.Buffer
	h := newPrettyTextHandler(&buf, &slog.HandlerOptions{})
	logger := slog.New(h.WithGroup("lang").WithAttrs([]slog.Attr{
		slog.String("pass", "parse"),
	}))
	logger.Info("msg", slog.Int("n", 1))

	output := buf.String()
	for _, want := range []string{"lang.pass=", "lang.n="} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var (
		buf bytes.Buffer
		wg  sync.WaitGroup
	)

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelInfo))

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("concurrent", slog.Int("i", i))
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 16 {
		t.Errorf("expected 16 lines, got %d", len(lines))
	}
}
