//go:build property

package watcher

import (
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDebouncerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("a batch holds each path once, sorted", prop.ForAll(
		func(paths []string) bool {
			if len(paths) == 0 {
				return true
			}
			d := newDebouncer(time.Hour)
			for _, p := range paths {
				d.addEvent(ChangeEvent{Type: EventTypeModified, Path: p})
			}
			d.timer.Stop()
			d.flush()

			batch := <-d.output
			unique := make(map[string]bool)
			for _, p := range paths {
				unique[p] = true
			}
			if len(batch) != len(unique) {
				return false
			}
			return sort.SliceIsSorted(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
		},
		gen.SliceOf(gen.OneConstOf("a.txt", "b.txt", "lang/en.toml", "images/logo.png", "z")),
	))

	properties.Property("the latest event for a path wins", prop.ForAll(
		func(types []int) bool {
			if len(types) == 0 {
				return true
			}
			d := newDebouncer(time.Hour)
			for _, typ := range types {
				d.addEvent(ChangeEvent{Type: EventType(typ), Path: "file"})
			}
			d.timer.Stop()
			d.flush()

			batch := <-d.output
			return len(batch) == 1 && batch[0].Type == EventType(types[len(types)-1])
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}
