package typewriter

// Observer receives timeline events. Calls arrive from every timeline
// goroutine concurrently.
type Observer interface {
	OnStart(target int, text string)
	OnFrame(target int, cycle int, f Frame)
	OnPass(target int, cycle int)
	OnDone(target int, err error)
}

// NopObserver implements Observer with no-ops. Embed it to pick single events.
type NopObserver struct{}

func (NopObserver) OnStart(int, string)     {}
func (NopObserver) OnFrame(int, int, Frame) {}
func (NopObserver) OnPass(int, int)         {}
func (NopObserver) OnDone(int, error)       {}

type observers []Observer

func (o observers) start(target int, text string) {
	for _, obs := range o {
		obs.OnStart(target, text)
	}
}

func (o observers) frame(target, cycle int, f Frame) {
	for _, obs := range o {
		obs.OnFrame(target, cycle, f)
	}
}

func (o observers) pass(target, cycle int) {
	for _, obs := range o {
		obs.OnPass(target, cycle)
	}
}

func (o observers) done(target int, err error) {
	for _, obs := range o {
		obs.OnDone(target, err)
	}
}
