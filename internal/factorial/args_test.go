package factorial

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/machapraveen/gilbench/internal/errors"
)

// TestParseArgs verifies host-calling-convention parsing of the two
// arguments.
func TestParseArgs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		nArg     string
		repsArg  string
		want     Args
		wantErr  bool
		errorArg string
	}{
		{
			name:    "typical arguments",
			nArg:    "20",
			repsArg: "5000000",
			want:    Args{N: 20, Repetitions: 5000000},
		},
		{
			name:    "smallest operand",
			nArg:    "0",
			repsArg: "1",
			want:    Args{N: 0, Repetitions: 1},
		},
		{
			name:    "max uint64 repetitions",
			nArg:    "5",
			repsArg: "18446744073709551615",
			want:    Args{N: 5, Repetitions: 18446744073709551615},
		},
		{
			name:     "non-numeric n",
			nArg:     "five",
			repsArg:  "1",
			wantErr:  true,
			errorArg: "n",
		},
		{
			name:     "negative n",
			nArg:     "-1",
			repsArg:  "1",
			wantErr:  true,
			errorArg: "n",
		},
		{
			name:     "empty n",
			nArg:     "",
			repsArg:  "1",
			wantErr:  true,
			errorArg: "n",
		},
		{
			name:     "fractional n",
			nArg:     "5.0",
			repsArg:  "1",
			wantErr:  true,
			errorArg: "n",
		},
		{
			name:     "non-numeric repetitions",
			nArg:     "5",
			repsArg:  "many",
			wantErr:  true,
			errorArg: "repetitions",
		},
		{
			name:     "negative repetitions",
			nArg:     "5",
			repsArg:  "-3",
			wantErr:  true,
			errorArg: "repetitions",
		},
		{
			name:     "repetitions overflow uint64",
			nArg:     "5",
			repsArg:  "18446744073709551616",
			wantErr:  true,
			errorArg: "repetitions",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseArgs(tt.nArg, tt.repsArg)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseArgs(%q, %q) expected error, got %+v", tt.nArg, tt.repsArg, got)
				}
				var argErr apperrors.ArgumentError
				if !errors.As(err, &argErr) {
					t.Fatalf("error should be an ArgumentError, got %T: %v", err, err)
				}
				if argErr.Arg != tt.errorArg {
					t.Errorf("ArgumentError.Arg = %q, want %q", argErr.Arg, tt.errorArg)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseArgs(%q, %q) returned error: %v", tt.nArg, tt.repsArg, err)
			}
			if got != tt.want {
				t.Errorf("ParseArgs(%q, %q) = %+v, want %+v", tt.nArg, tt.repsArg, got, tt.want)
			}
		})
	}
}

// TestArgsValidate verifies the caller-side bounds.
func TestArgsValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    Args
		wantErr bool
	}{
		{"typical", Args{N: 20, Repetitions: 5000000}, false},
		{"n zero", Args{N: 0, Repetitions: 1}, false},
		{"single repetition", Args{N: 5, Repetitions: 1}, false},
		{"n beyond overflow bound", Args{N: MaxN + 1, Repetitions: 1}, true},
		{"zero repetitions", Args{N: 5, Repetitions: 0}, true},
		{"both invalid reports n first", Args{N: 99, Repetitions: 0}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.args.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate(%+v) expected error", tt.args)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%+v) returned unexpected error: %v", tt.args, err)
			}
			if err != nil {
				var argErr apperrors.ArgumentError
				if !errors.As(err, &argErr) {
					t.Errorf("validation error should be an ArgumentError, got %T", err)
				}
			}
		})
	}
}

// TestValidateErrorMessages pins the messages users actually see.
func TestValidateErrorMessages(t *testing.T) {
	t.Parallel()

	err := Args{N: 25, Repetitions: 1}.Validate()
	if err == nil || !strings.Contains(err.Error(), "overflows uint64") {
		t.Errorf("n overflow message should mention uint64 overflow, got %v", err)
	}

	err = Args{N: 5, Repetitions: 0}.Validate()
	if err == nil || !strings.Contains(err.Error(), "at least 1") {
		t.Errorf("zero repetitions message should say at least 1, got %v", err)
	}
}
