package queue_test

import (
	"context"
	"testing"
	"time"

	queue "github.com/pitchside/oracle/internal/adapters/mq/queue"
	model "github.com/pitchside/oracle/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func event(id string) queue.Event {
	return model.Match{
		EventID: id,
		Team1:   "A", Team2: "B",
		Team1Score: 160, Team2Score: 150,
		Winner: model.SlotTeam1,
	}
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a new in-memory queue", t, func() {
		q := queue.NewInMemoryQueue(
			queue.WithCapacity(2),
			queue.WithBufferSize(2),
		)

		Convey("When enqueueing within capacity", func() {
			ok := q.Enqueue(context.Background(), event("e1"))

			Convey("Then the event is accepted", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(context.Background()), ShouldEqual, 1)
			})
		})

		Convey("When the queue is full", func() {
			So(q.Enqueue(context.Background(), event("e1")), ShouldBeTrue)
			So(q.Enqueue(context.Background(), event("e2")), ShouldBeTrue)
			ok := q.Enqueue(context.Background(), event("e3"))

			Convey("Then further enqueues report backpressure", func() {
				So(ok, ShouldBeFalse)
				So(q.Len(context.Background()), ShouldEqual, 2)
			})
		})

		Convey("When dequeueing", func() {
			So(q.Enqueue(context.Background(), event("e1")), ShouldBeTrue)
			So(q.Enqueue(context.Background(), event("e2")), ShouldBeTrue)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			out := q.Dequeue(ctx)

			Convey("Then events arrive in order", func() {
				first := <-out
				second := <-out
				So(first.EventID, ShouldEqual, "e1")
				So(second.EventID, ShouldEqual, "e2")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Enqueue(context.Background(), event("e1")), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then new enqueues are rejected", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(context.Background(), event("e2")), ShouldBeFalse)
			})

			Convey("Then buffered events drain before the channel closes", func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				out := q.Dequeue(ctx)

				e, ok := <-out
				So(ok, ShouldBeTrue)
				So(e.EventID, ShouldEqual, "e1")

				_, ok = <-out
				So(ok, ShouldBeFalse)
			})

			Convey("Then closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
