// Package autosave rotates dated project snapshots in a home folder,
// pruning anything older than a configurable retention window.
package autosave

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
	"github.com/bertiqwerty/rvimage-sub001/internal/rvlog"
)

const dateFormat = "060102" // YYMMDD, matching Go's reference-time layout

// KeepNDays is how long an autosave snapshot survives before it is pruned.
const KeepNDays = 30

// DefaultIntervalSeconds is how often a caller should tick Autosave.
const DefaultIntervalSeconds = 120

var dateRegexp = regexp.MustCompile(`autosave_d[0-9]{6}_`)

// extractDate pulls the YYMMDD date out of an autosave_dYYMMDD_ filename
// fragment. It returns ok=false for any filename without a well-formed
// fragment, including one with the right shape but an unparseable date.
func extractDate(filename string) (time.Time, bool) {
	m := dateRegexp.FindString(filename)
	if m == "" {
		return time.Time{}, false
	}
	digits := m[len("autosave_d") : len(m)-1]
	t, err := time.Parse(dateFormat, digits)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ListFiles returns every file directly under homeFolder whose name carries
// an autosave date fragment within [startDate, endDate]. A zero time.Time
// for either bound means unbounded on that side.
func ListFiles(homeFolder string, startDate, endDate time.Time) ([]string, error) {
	const op = "autosave.ListFiles"
	if homeFolder == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(homeFolder)
	if err != nil {
		return nil, rverr.New(rverr.IO, op, err)
	}
	var matched []string
	for _, entry := range entries {
		date, ok := extractDate(entry.Name())
		if !ok {
			continue
		}
		if !startDate.IsZero() && date.Before(startDate) {
			continue
		}
		if !endDate.IsZero() && date.After(endDate) {
			continue
		}
		matched = append(matched, filepath.Join(homeFolder, entry.Name()))
	}
	sort.Strings(matched)
	return matched, nil
}

// makeTimespan returns (today, today-nDays), the window ListFiles uses to
// find files due for pruning.
func makeTimespan(nDays int) (today, cutoff time.Time) {
	today = time.Now()
	cutoff = today.AddDate(0, 0, -nDays)
	return today, cutoff
}

func makeFilepath(homeFolder, prjStem, todayStr string, n uint8) string {
	return filepath.Join(homeFolder, fmt.Sprintf("%s-autosave_d%s_%d.json", prjStem, todayStr, n))
}

// Autosave prunes snapshots older than KeepNDays, copies each of today's
// snapshots at index i (1 <= i < nAutosaves) onto index i-1, and calls
// savePrj with the path the newest snapshot (index nAutosaves-1) should be
// written to. Listing, pruning, rotation and save failures are logged and
// not returned.
func Autosave(currentPrjPath, homeFolder string, nAutosaves uint8, savePrj func(path string) error) error {
	prjStem := strings.TrimSuffix(filepath.Base(currentPrjPath), filepath.Ext(currentPrjPath))

	today, cutoff := makeTimespan(KeepNDays)

	stale, err := ListFiles(homeFolder, time.Time{}, cutoff)
	if err != nil {
		rvlog.L().Sugar().Infof("failed to list autosave files in %s: %v", homeFolder, err)
	}
	for _, p := range stale {
		rvlog.L().Sugar().Infof("deleting %s", p)
		if err := os.Remove(p); err != nil {
			rvlog.L().Sugar().Infof("failed to delete %s: %v", p, err)
		}
	}

	todayStr := today.Format(dateFormat)
	for i := uint8(1); i < nAutosaves; i++ {
		from := makeFilepath(homeFolder, prjStem, todayStr, i)
		to := makeFilepath(homeFolder, prjStem, todayStr, i-1)
		if _, err := os.Stat(from); err == nil {
			if err := copyFile(from, to); err != nil {
				rvlog.L().Sugar().Infof("failed to rotate %s to %s: %v", from, to, err)
			}
		}
	}

	if nAutosaves == 0 {
		return nil
	}
	prjPath := makeFilepath(homeFolder, prjStem, todayStr, nAutosaves-1)
	if err := savePrj(prjPath); err != nil {
		rvlog.L().Sugar().Infof("autosave failed: %v", err)
		return nil
	}
	rvlog.L().Sugar().Infof("autosaved to %s", prjPath)
	return nil
}

func copyFile(from, to string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	return os.WriteFile(to, data, 0o644)
}
