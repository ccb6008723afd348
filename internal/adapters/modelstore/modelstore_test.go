package modelstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	modelstore "github.com/pitchside/oracle/internal/adapters/modelstore"
	stats "github.com/pitchside/oracle/internal/domain/stats"
	"github.com/pitchside/oracle/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func trainedSnapshot() *stats.Snapshot {
	snap := stats.NewSnapshot()
	snap.TeamStats["A"] = &stats.TeamStats{
		MatchesPlayed: 5, Wins: 4, TotalScore: 880,
		WinRate: 0.8, AvgScore: 176,
	}
	snap.VenueStats["Eden Gardens"] = &stats.VenueStats{
		Matches: 4,
		Teams:   map[string]int{"A": 4},
	}
	snap.TossImpact = stats.TossImpact{BatFirstWins: 1, BowlFirstWins: 2, Total: 4}
	snap.TrainedAt = time.Now().UTC().Truncate(time.Second)
	return snap
}

func TestFileStore(t *testing.T) {
	Convey("Given a file store in a fresh directory", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "model.json")
		store := modelstore.NewFileStore(path)

		Convey("When no snapshot has ever been saved", func() {
			snap, err := store.Load(ctx)

			Convey("Then Load yields empty aggregates, not an error", func() {
				So(err, ShouldBeNil)
				So(snap, ShouldNotBeNil)
				So(snap.TeamStats, ShouldBeEmpty)
				So(snap.VenueStats, ShouldBeEmpty)
				So(snap.TrainedAt.IsZero(), ShouldBeTrue)
			})
		})

		Convey("When saving and reloading a snapshot", func() {
			saved := trainedSnapshot()
			So(store.Save(ctx, saved), ShouldBeNil)

			loaded, err := store.Load(ctx)

			Convey("Then the snapshot round-trips", func() {
				So(err, ShouldBeNil)
				So(loaded.SchemaVersion, ShouldEqual, stats.SchemaVersion)
				So(loaded.TeamStats, ShouldResemble, saved.TeamStats)
				So(loaded.VenueStats, ShouldResemble, saved.VenueStats)
				So(loaded.TossImpact, ShouldResemble, saved.TossImpact)
				So(loaded.TrainedAt.Equal(saved.TrainedAt), ShouldBeTrue)
			})
		})

		Convey("When saving over an existing snapshot", func() {
			So(store.Save(ctx, trainedSnapshot()), ShouldBeNil)

			second := trainedSnapshot()
			second.TeamStats["B"] = &stats.TeamStats{MatchesPlayed: 2, Wins: 1, WinRate: 0.5}
			So(store.Save(ctx, second), ShouldBeNil)

			Convey("Then the replacement is complete", func() {
				loaded, err := store.Load(ctx)
				So(err, ShouldBeNil)
				So(loaded.TeamStats, ShouldResemble, second.TeamStats)
			})

			Convey("Then no temp files are left behind", func() {
				entries, err := os.ReadDir(filepath.Dir(path))
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
			})
		})

		Convey("When the file carries an unknown schema version", func() {
			So(os.WriteFile(path, []byte(`{"schema_version": 99}`), 0o644), ShouldBeNil)
			_, err := store.Load(ctx)

			Convey("Then Load refuses it explicitly", func() {
				So(errors.Is(err, modelstore.ErrUnsupportedSchema), ShouldBeTrue)
			})
		})

		Convey("When the file is corrupt", func() {
			So(os.WriteFile(path, []byte(`{not json`), 0o644), ShouldBeNil)
			_, err := store.Load(ctx)

			Convey("Then Load fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a store pointed at a nested path", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "deep", "nested", "model.json")
		store := modelstore.NewFileStore(path)

		Convey("When saving", func() {
			err := store.Save(ctx, trainedSnapshot())

			Convey("Then missing directories are created", func() {
				So(err, ShouldBeNil)
				_, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
			})
		})
	})
}
