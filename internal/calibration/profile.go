// This file implements calibration profile persistence and validation.

package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Profile Structure
// ─────────────────────────────────────────────────────────────────────────────

// CurrentProfileVersion is incremented whenever the profile format or the
// meaning of a measured field changes, invalidating older cached profiles.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile file stored in the home directory.
const DefaultProfileFileName = ".gilbench_calibration.json"

// CalibrationProfile caches measured benchmark parameters together with a
// fingerprint of the hardware they were measured on. A profile is only
// trusted when the fingerprint still matches the running machine.
type CalibrationProfile struct {
	// Hardware fingerprint
	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"` // 32 or 64; the loop is uint64 multiplies

	// Measured recommendations
	OptimalWorkers      int     `json:"optimal_workers"`
	OptimalRepetitions  uint64  `json:"optimal_repetitions"`
	IterationsPerSecond float64 `json:"iterations_per_second"`

	// Bookkeeping
	ProfileVersion  int       `json:"profile_version"`
	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`
}

// NewProfile creates a profile fingerprinting the current machine, with
// no measurements yet.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Persistence
// ─────────────────────────────────────────────────────────────────────────────

// SaveProfile writes the profile as JSON to path, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling calibration profile: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

// loadProfile reads and decodes a profile from path. It performs no
// validity checks; callers decide with IsValid and IsStale.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration profile: %w", err)
	}

	var profile CalibrationProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing calibration profile: %w", err)
	}
	return &profile, nil
}

// LoadOrCreateProfile loads a valid profile from path, or creates a fresh
// fingerprint when the file is missing, unreadable or no longer matches
// the machine. The second return value reports whether a cached profile
// was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	profile, err := loadProfile(path)
	if err == nil && profile.IsValid() {
		return profile, true
	}
	return NewProfile(), false
}

// GetDefaultProfilePath returns the profile location in the user's home
// directory, falling back to the working directory when the home cannot
// be determined.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// ─────────────────────────────────────────────────────────────────────────────
// Validity
// ─────────────────────────────────────────────────────────────────────────────

// IsValid reports whether the profile was measured on hardware matching
// the current machine and with the current profile format.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge. Stale
// profiles are still structurally valid but should be remeasured.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String renders a human-readable profile summary.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf(
		"calibration profile v%d: %d workers, %d repetitions (%.0f iterations/s) on %d CPUs %s/%s, measured %s",
		p.ProfileVersion,
		p.OptimalWorkers,
		p.OptimalRepetitions,
		p.IterationsPerSecond,
		p.NumCPU,
		p.GOOS,
		p.GOARCH,
		p.CalibratedAt.Format(time.RFC3339),
	)
}
