package typewriter_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/typewriter"
)

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		clock  *recordingClock
		eng    *typewriter.Engine
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)
		clock = &recordingClock{}
		eng = typewriter.New(typewriter.WithClock(clock))
	})

	targets := func(ts ...*fakeTarget) []typewriter.Target {
		out := make([]typewriter.Target, len(ts))
		for i, t := range ts {
			out[i] = t
		}
		return out
	}

	Describe("a single non-repeating target", func() {
		It("reveals \"Hi\" one character at a time", func() {
			tgt := newFakeTarget("Hi")
			done := eng.Run(ctx, targets(tgt), config.Options{
				Speed: config.Int(100), Repeat: config.Bool(false), Cursor: config.Bool(false),
			})

			Eventually(done.Done()).Should(BeClosed())
			value, err := done.Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(typewriter.CompletionValue))

			Expect(tgt.Shown()).To(Equal([]string{"", "H", "Hi"}))
			text, cursor := tgt.Current()
			Expect(text).To(Equal("Hi"))
			Expect(cursor).To(BeFalse())
			Expect(clock.Delays()).To(Equal([]time.Duration{0, 0}))
		})

		DescribeTable("reproduces the source text",
			func(text string, cursor bool) {
				tgt := newFakeTarget(text)
				done := eng.Run(ctx, targets(tgt), config.Options{Cursor: config.Bool(cursor)})

				Eventually(done.Done()).Should(BeClosed())
				final, hasCursor := tgt.Current()
				Expect(final).To(Equal(text))
				Expect(hasCursor).To(Equal(cursor))

				tl := done.Timelines()[0]
				Expect(tl.State()).To(Equal(typewriter.StateDone))
				revealed, visible := tl.Revealed()
				Expect(revealed).To(Equal(text))
				Expect(visible).To(Equal(cursor))
			},
			Entry("short word with cursor", "Hi", true),
			Entry("short word without cursor", "Hi", false),
			Entry("sentence with cursor", "Hello, world!", true),
			Entry("sentence without cursor", "Hello, world!", false),
			Entry("single character", "x", true),
			Entry("multibyte runes", "héllo wörld", false),
		)

		It("uses 100 - speed for every step, the last one included", func() {
			tgt := newFakeTarget("abcd")
			done := eng.Run(ctx, targets(tgt), config.Options{Speed: config.Int(30), Interval: config.Int(900)})

			Eventually(done.Done()).Should(BeClosed())
			Expect(clock.Delays()).To(HaveLen(4))
			for _, d := range clock.Delays() {
				Expect(d).To(Equal(70 * time.Millisecond))
			}
		})

		It("applies colour and resets the margin", func() {
			tgt := newFakeTarget("ok")
			done := eng.Run(ctx, targets(tgt), config.Options{Color: config.String("orange")})

			Eventually(done.Done()).Should(BeClosed())
			Expect(tgt.color).To(Equal("orange"))
			Expect(tgt.margin).To(Equal("0px"))
		})

		It("blinks the cursor on every step but the last", func() {
			tgt := newFakeTarget("abc")
			done := eng.Run(ctx, targets(tgt), config.Options{Cursor: config.Bool(true)})

			Eventually(done.Done()).Should(BeClosed())
			Expect(tgt.Blinks()).To(Equal([]bool{true, true, false}))
		})

		It("resolves with the defaults when no option is given", func() {
			tgt := newFakeTarget("abc")
			done := eng.Run(ctx, targets(tgt), config.Options{})

			Eventually(done.Done()).Should(BeClosed())
			Expect(done.Timelines()[0].Config()).To(Equal(config.Config{
				Speed: 50, Repeat: false, Cursor: true, Color: "black", Interval: 1000,
			}))
			Expect(clock.Delays()).To(Equal([]time.Duration{
				50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond,
			}))
		})

		It("clears the text before Run returns", func() {
			blocking := &recordingClock{limit: 1}
			eng = typewriter.New(typewriter.WithClock(blocking))
			tgt := newFakeTarget("abc")

			done := eng.Run(ctx, targets(tgt), config.Options{})
			Expect(tgt.Shown()).NotTo(BeEmpty())
			Expect(tgt.Shown()[0]).To(Equal(""))
			Expect(done.Timelines()[0].Units()).To(Equal([]string{"a", "b", "c"}))
		})
	})

	Describe("empty input", func() {
		It("settles immediately for an empty target set", func() {
			done := eng.Run(ctx, nil, config.Options{})
			Expect(done.Done()).To(BeClosed())
			value, err := done.Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(typewriter.CompletionValue))
		})

		It("settles without reveal steps for an empty text", func() {
			tgt := newFakeTarget("")
			done := eng.Run(ctx, targets(tgt), config.Options{Color: config.String("red")})

			Eventually(done.Done()).Should(BeClosed())
			Expect(clock.Delays()).To(BeEmpty())
			Expect(tgt.Shown()).To(Equal([]string{""}))
			Expect(tgt.color).To(Equal("red"))
			Expect(done.Timelines()[0].State()).To(Equal(typewriter.StateDone))
		})

		It("finishes an empty repeating target instead of looping", func() {
			tgt := newFakeTarget("")
			done := eng.Run(ctx, targets(tgt), config.Options{Repeat: config.Bool(true)})

			Eventually(done.Done()).Should(BeClosed())
			_, err := done.Result()
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("repeating targets", func() {
		It("uses the interval after the last character of a pass", func() {
			blocking := &recordingClock{limit: 6}
			eng = typewriter.New(typewriter.WithClock(blocking))
			tgt := newFakeTarget("abc")

			eng.Run(ctx, targets(tgt), config.Options{
				Speed: config.Int(20), Repeat: config.Bool(true), Interval: config.Int(500),
			})

			Eventually(func() int { return len(blocking.Delays()) }).Should(BeNumerically(">", 6))
			step, pause := 80*time.Millisecond, 500*time.Millisecond
			Expect(blocking.Delays()[:6]).To(Equal([]time.Duration{step, step, pause, step, step, pause}))
		})

		It("cycles through empty, growing prefix and full text without settling", func() {
			eng = typewriter.New()
			tgt := newFakeTarget("Hi")
			done := eng.Run(ctx, targets(tgt), config.Options{
				Speed: config.Int(100), Repeat: config.Bool(true), Cursor: config.Bool(false), Interval: config.Int(5),
			})
			tl := done.Timelines()[0]

			Consistently(done.Done(), 150*time.Millisecond).ShouldNot(BeClosed())
			Eventually(tl.Cycle).Should(BeNumerically(">=", 2))
			Expect(tl.State()).To(Equal(typewriter.StateRepeating))

			shown := tgt.Shown()
			Expect(len(shown)).To(BeNumerically(">=", 7))
			Expect(shown[:7]).To(Equal([]string{"", "H", "Hi", "", "H", "Hi", ""}))

			cancel()
			Eventually(done.Done()).Should(BeClosed())
			_, err := done.Result()
			Expect(err).To(MatchError(context.Canceled))
		})

		It("keeps the whole run pending while its targets loop", func() {
			eng = typewriter.New()
			done := eng.Run(ctx, targets(newFakeTarget("a"), newFakeTarget("loop")), config.Options{
				Speed: config.Int(100), Repeat: config.Bool(true), Interval: config.Int(5),
			})

			Consistently(done.Done(), 100*time.Millisecond).ShouldNot(BeClosed())
			_, err := done.Result()
			Expect(err).To(MatchError(typewriter.ErrPending))
		})
	})

	Describe("several targets", func() {
		It("settles only after the slowest target is done", func() {
			eng = typewriter.New()
			fast := newFakeTarget("a")
			slow := newFakeTarget("abcdefghijkl")
			done := eng.Run(ctx, targets(fast, slow), config.Options{Speed: config.Int(75), Cursor: config.Bool(false)})
			timelines := done.Timelines()

			Eventually(timelines[0].State).Should(Equal(typewriter.StateDone))
			Expect(timelines[1].State()).NotTo(Equal(typewriter.StateDone))
			Expect(done.Done()).NotTo(BeClosed())

			Eventually(done.Done(), time.Second).Should(BeClosed())
			Expect(timelines[1].State()).To(Equal(typewriter.StateDone))
			text, _ := slow.Current()
			Expect(text).To(Equal("abcdefghijkl"))
		})

		It("keeps a cursor marker on each target", func() {
			a, b := newFakeTarget("one"), newFakeTarget("two")
			done := eng.Run(ctx, targets(a, b), config.Options{Cursor: config.Bool(true)})

			Eventually(done.Done()).Should(BeClosed())
			_, ca := a.Current()
			_, cb := b.Current()
			Expect(ca).To(BeTrue())
			Expect(cb).To(BeTrue())
		})

		It("gives every timeline its own copy of the configuration", func() {
			done := eng.Run(ctx, targets(newFakeTarget("a"), newFakeTarget("b")), config.Options{Speed: config.Int(10)})

			Eventually(done.Done()).Should(BeClosed())
			for _, tl := range done.Timelines() {
				Expect(tl.Config().Speed).To(Equal(10))
			}
		})
	})

	Describe("faults", func() {
		It("isolates a failing target and reports it", func() {
			eng = typewriter.New()
			bad := newFakeTarget("broken")
			bad.failSet = 3
			good := newFakeTarget("fine")
			done := eng.Run(ctx, targets(bad, good), config.Options{Speed: config.Int(95)})

			Eventually(done.Done(), time.Second).Should(BeClosed())
			value, err := done.Result()
			Expect(value).To(BeEmpty())
			Expect(errors.Is(err, typewriter.ErrTargetFault)).To(BeTrue())
			Expect(errors.Is(err, errBoom)).To(BeTrue())

			var terr *typewriter.TargetError
			Expect(errors.As(err, &terr)).To(BeTrue())
			Expect(terr.Index).To(Equal(0))
			Expect(terr.Op).To(Equal("set text"))

			Expect(done.Timelines()[0].State()).To(Equal(typewriter.StateFailed))
			text, _ := good.Current()
			Expect(text).To(Equal("fine"))
		})

		It("fails a target whose text cannot be read", func() {
			bad := newFakeTarget("x")
			bad.readErr = errBoom
			done := eng.Run(ctx, targets(bad, newFakeTarget("ok")), config.Options{})

			Eventually(done.Done()).Should(BeClosed())
			_, err := done.Result()
			Expect(err).To(MatchError(ContainSubstring("read text")))
		})

		It("rejects a nil target", func() {
			done := eng.Run(ctx, []typewriter.Target{nil}, config.Options{})

			Eventually(done.Done()).Should(BeClosed())
			_, err := done.Result()
			Expect(errors.Is(err, typewriter.ErrNilTarget)).To(BeTrue())
		})
	})

	Describe("cancellation", func() {
		It("stops a pending run when ctx is cancelled", func() {
			blocking := &recordingClock{limit: 1}
			eng = typewriter.New(typewriter.WithClock(blocking))
			done := eng.Run(ctx, targets(newFakeTarget("abcdef")), config.Options{})

			Consistently(done.Done(), 50*time.Millisecond).ShouldNot(BeClosed())
			cancel()

			Eventually(done.Done()).Should(BeClosed())
			_, err := done.Result()
			Expect(err).To(MatchError(context.Canceled))
		})

		It("lets Wait give up without cancelling the run", func() {
			blocking := &recordingClock{limit: 1}
			eng = typewriter.New(typewriter.WithClock(blocking))
			done := eng.Run(ctx, targets(newFakeTarget("abc")), config.Options{})

			waitCtx, stop := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer stop()
			_, err := done.Wait(waitCtx)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(done.Done()).NotTo(BeClosed())
		})
	})
})
