package reflectdiff

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  Mode
	}{
		{"ignore_defaults", IgnoreDefaults},
		{"lenient_dates", LenientDates},
		{"lenient_order", LenientOrder},
		{"LENIENT_ORDER", LenientOrder},
		{"lenient-order", LenientOrder},
		{"  Ignore-Defaults ", IgnoreDefaults},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMode(tt.token)
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseMode_Unknown(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "fuzzy", "lenient", "strict"} {
		_, err := ParseMode(token)
		if !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", token, err)
		}
	}
}

func TestParseModes(t *testing.T) {
	t.Parallel()

	got, err := ParseModes("ignore_defaults", "lenient_order")
	if err != nil {
		t.Fatalf("ParseModes() error = %v", err)
	}
	if got != IgnoreDefaults|LenientOrder {
		t.Errorf("ParseModes() = %v, want ignore_defaults|lenient_order", got)
	}

	if got, err := ParseModes(); err != nil || got != Strict {
		t.Errorf("ParseModes() with no tokens = %v, %v; want strict, nil", got, err)
	}

	if _, err := ParseModes("lenient_dates", "bogus"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseModes() error = %v, want ErrUnknownMode", err)
	}
}

func TestNewWithModes_RejectsUnknownToken(t *testing.T) {
	t.Parallel()

	c, err := NewWithModes("lenient_order", "nope")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("NewWithModes() error = %v, want ErrUnknownMode", err)
	}
	if c != nil {
		t.Error("NewWithModes() returned a comparator alongside an error")
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		want string
	}{
		{Strict, "strict"},
		{IgnoreDefaults, "ignore_defaults"},
		{IgnoreDefaults | LenientOrder, "ignore_defaults|lenient_order"},
		{IgnoreDefaults | LenientDates | LenientOrder, "ignore_defaults|lenient_dates|lenient_order"},
		{Mode(0x80) | LenientDates, "lenient_dates|0x80"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", uint8(tt.mode), got, tt.want)
		}
	}
}

func TestModeHas(t *testing.T) {
	t.Parallel()

	m := IgnoreDefaults | LenientDates
	if !m.Has(IgnoreDefaults) || !m.Has(LenientDates) {
		t.Error("Has() = false for a set flag")
	}
	if m.Has(LenientOrder) {
		t.Error("Has(LenientOrder) = true for an unset flag")
	}
	if !m.Has(Strict) {
		t.Error("Has(Strict) = false, want true for the empty set")
	}
}

func TestAllModes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	modes := AllModes()
	if len(modes) != 3 {
		t.Fatalf("len(AllModes()) = %d, want 3", len(modes))
	}
	modes[0].Token = "changed"
	if AllModes()[0].Token != "ignore_defaults" {
		t.Error("AllModes() exposes the internal table")
	}
}

func TestParseReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Report
		wantErr bool
	}{
		{"", ReportFirst, false},
		{"first", ReportFirst, false},
		{"ALL", ReportAll, false},
		{"every", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseReport(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReport(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("ParseReport(%q) error = %v, want ErrInvalidOptions", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReport(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero value", Options{}, false},
		{"all modes", Options{Modes: IgnoreDefaults | LenientDates | LenientOrder, Report: ReportAll}, false},
		{"unknown mode bit", Options{Modes: Mode(0x40)}, true},
		{"negative depth", Options{MaxDepth: -1}, true},
		{"unknown report", Options{Report: Report(7)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateOptions(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("ValidateOptions() error = %v, want ErrInvalidOptions", err)
			}
			if _, newErr := New(tt.opts); (newErr != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", newErr, tt.wantErr)
			}
		})
	}
}

func TestMustNew_PanicsOnInvalidOptions(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustNew() did not panic")
		}
	}()
	MustNew(Options{MaxDepth: -5})
}
