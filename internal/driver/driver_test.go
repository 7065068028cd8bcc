package driver_test

import (
	"context"
	"errors"
	"image/draw"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
	"github.com/vovakirdan/framedrive/internal/engine"
	"github.com/vovakirdan/framedrive/internal/platform/headless"
)

// recordingEngine logs every call so tests can assert ordering and values.
type recordingEngine struct {
	width, height int

	calls   []string
	deltas  []float64
	clicks  [][2]float64
	sizes   [][2]int // surface size seen by each Render
	failAt  map[string]int
	callNum map[string]int
	panicOn string
}

func newRecordingEngine(w, h int) *recordingEngine {
	return &recordingEngine{
		width:   w,
		height:  h,
		failAt:  make(map[string]int),
		callNum: make(map[string]int),
	}
}

var errBoom = errors.New("boom")

func (e *recordingEngine) hit(name string) error {
	e.callNum[name]++
	e.calls = append(e.calls, name)
	if e.panicOn == name {
		panic("engine " + name + " exploded")
	}
	if n, ok := e.failAt[name]; ok && (n == 0 || n == e.callNum[name]) {
		return errBoom
	}
	return nil
}

func (e *recordingEngine) Width() int  { return e.width }
func (e *recordingEngine) Height() int { return e.height }

func (e *recordingEngine) Advance(delta float64) error {
	e.deltas = append(e.deltas, delta)
	return e.hit("advance")
}

func (e *recordingEngine) Render(dst draw.Image) error {
	b := dst.Bounds()
	e.sizes = append(e.sizes, [2]int{b.Dx(), b.Dy()})
	return e.hit("render")
}

func (e *recordingEngine) Click(x, y float64) error {
	e.clicks = append(e.clicks, [2]float64{x, y})
	return e.hit("click")
}

type fixture struct {
	eng   *recordingEngine
	sched *headless.Scheduler
	clock *headless.Clock
	el    *headless.Element
	drv   *driver.Driver
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, w, h int, opts ...driver.Option) *fixture {
	t.Helper()
	f := &fixture{
		eng:   newRecordingEngine(w, h),
		sched: headless.NewScheduler(),
		clock: headless.NewClock(epoch),
		el:    headless.NewElement(),
	}
	opts = append([]driver.Option{driver.WithClock(f.clock)}, opts...)
	f.drv = driver.New(func() (engine.Engine, error) { return f.eng, nil }, f.sched, opts...)
	return f
}

func (f *fixture) init(t *testing.T) {
	t.Helper()
	if err := f.drv.Initialize(f.el); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
}

// orderElement records the order in which Initialize touches it.
type orderElement struct {
	*headless.Element
	sched  *headless.Scheduler
	events *[]string
}

func (o orderElement) SetSize(w, h int) {
	*o.events = append(*o.events, "size")
	o.Element.SetSize(w, h)
}

func (o orderElement) AddClickListener(fn driver.ClickListener) {
	if o.sched.Pending() != 0 {
		*o.events = append(*o.events, "frame-before-listener")
	}
	*o.events = append(*o.events, "listener")
	o.Element.AddClickListener(fn)
}

type orderScheduler struct {
	*headless.Scheduler
	el     *headless.Element
	events *[]string
}

func (o orderScheduler) RequestFrame(fn func()) {
	b := o.el.Image().Bounds()
	if len(*o.events) == 2 {
		*o.events = append(*o.events, "frame")
	}
	if b.Dx() == 0 {
		*o.events = append(*o.events, "frame-before-size")
	}
	o.Scheduler.RequestFrame(fn)
}

func TestInitializeOrdering(t *testing.T) {
	var events []string
	el := headless.NewElement()
	sched := headless.NewScheduler()
	eng := newRecordingEngine(200, 100)

	oe := orderElement{Element: el, sched: sched, events: &events}
	osched := orderScheduler{Scheduler: sched, el: el, events: &events}

	d := driver.New(func() (engine.Engine, error) { return eng, nil }, osched)
	if err := d.Initialize(oe); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	expected := []string{"size", "listener", "frame"}
	if len(events) != len(expected) {
		t.Fatalf("events = %v, expected %v", events, expected)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("events[%d] = %q, expected %q", i, events[i], expected[i])
		}
	}

	b := el.Image().Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("surface = %dx%d, expected 200x100", b.Dx(), b.Dy())
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1 frame scheduled", sched.Pending())
	}
	if len(eng.calls) != 0 {
		t.Errorf("engine calls during Initialize = %v, expected none", eng.calls)
	}
}

func TestInitializeConstructFailure(t *testing.T) {
	sched := headless.NewScheduler()
	el := headless.NewElement()
	d := driver.New(func() (engine.Engine, error) { return nil, errBoom }, sched)

	err := d.Initialize(el)
	if !errors.Is(err, driver.ErrConstruct) || !errors.Is(err, errBoom) {
		t.Fatalf("Initialize() error = %v, expected ErrConstruct wrapping boom", err)
	}
	if el.SizeCalls() != 0 {
		t.Error("surface should not be sized after construction failure")
	}
	if el.Listeners() != 0 {
		t.Error("click listener should not be registered after construction failure")
	}
	if sched.Pending() != 0 {
		t.Error("no frame should be scheduled after construction failure")
	}
	if d.Running() {
		t.Error("Running() should be false after construction failure")
	}
}

func TestInitializeConstructPanic(t *testing.T) {
	sched := headless.NewScheduler()
	d := driver.New(func() (engine.Engine, error) { panic("wasm trap") }, sched)

	err := d.Initialize(headless.NewElement())
	var fault *driver.FaultError
	if !errors.As(err, &fault) || fault.Step != "construct" {
		t.Fatalf("Initialize() error = %v, expected construct FaultError", err)
	}
	if sched.Pending() != 0 {
		t.Error("no frame should be scheduled after construction panic")
	}
}

func TestInitializeInvalidSize(t *testing.T) {
	f := newFixture(t, 0, 10)
	if err := f.drv.Initialize(f.el); !errors.Is(err, driver.ErrConstruct) {
		t.Errorf("Initialize() error = %v, expected ErrConstruct", err)
	}
	if f.sched.Pending() != 0 {
		t.Error("no frame should be scheduled for an invalid engine size")
	}
}

func TestInitializeTwice(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.init(t)

	if err := f.drv.Initialize(f.el); !errors.Is(err, driver.ErrAlreadyInitialized) {
		t.Errorf("second Initialize() error = %v, expected ErrAlreadyInitialized", err)
	}
	if f.el.SizeCalls() != 1 {
		t.Errorf("SetSize called %d times, expected 1", f.el.SizeCalls())
	}
}

func TestFrameLoopDeltas(t *testing.T) {
	f := newFixture(t, 10, 10)

	// Time passes between New and the first frame (module load).
	f.clock.Advance(50 * time.Millisecond)
	f.init(t)

	steps := []time.Duration{16 * time.Millisecond, 17 * time.Millisecond, 0, 1500 * time.Microsecond}
	for _, d := range steps {
		f.clock.Advance(d)
		if !f.sched.Step() {
			t.Fatal("Step() found no scheduled frame")
		}
	}

	expected := []float64{66, 17, 0, 1.5}
	if len(f.eng.deltas) != len(expected) {
		t.Fatalf("deltas = %v, expected %v", f.eng.deltas, expected)
	}
	for i, want := range expected {
		if math.Abs(f.eng.deltas[i]-want) > 1e-9 {
			t.Errorf("delta[%d] = %v, expected %v", i, f.eng.deltas[i], want)
		}
		if f.eng.deltas[i] < 0 {
			t.Errorf("delta[%d] = %v is negative under a monotonic clock", i, f.eng.deltas[i])
		}
	}

	if got := f.drv.Stats().Frames; got != 4 {
		t.Errorf("Stats().Frames = %d, expected 4", got)
	}
}

func TestFrameAdvanceBeforeRender(t *testing.T) {
	f := newFixture(t, 8, 6)
	f.init(t)

	for range 3 {
		f.sched.Step()
	}

	expected := []string{"advance", "render", "advance", "render", "advance", "render"}
	for i, want := range expected {
		if f.eng.calls[i] != want {
			t.Fatalf("calls = %v, expected %v", f.eng.calls, expected)
		}
	}
	for i, size := range f.eng.sizes {
		if size != [2]int{8, 6} {
			t.Errorf("render %d saw surface %v, expected [8 6]", i, size)
		}
	}
}

func TestFrameReschedulesOnSuccess(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.init(t)

	for n := range 100 {
		if f.sched.Pending() != 1 {
			t.Fatalf("frame %d: Pending() = %d, expected 1", n, f.sched.Pending())
		}
		f.sched.Step()
	}
	if !f.drv.Running() {
		t.Error("loop should still be running after 100 successful frames")
	}
}

func TestNegativeDeltaPassesThrough(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.init(t)

	f.clock.Set(epoch.Add(-10 * time.Millisecond))
	f.sched.Step()

	if len(f.eng.deltas) != 1 || f.eng.deltas[0] != -10 {
		t.Errorf("deltas = %v, expected [-10]", f.eng.deltas)
	}
	if f.sched.Pending() != 1 {
		t.Error("negative delta should not stop the loop")
	}
}

func TestRenderFailureHaltsScheduling(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.eng.failAt["render"] = 3
	f.init(t)

	for range 10 {
		f.sched.Step()
	}

	if got := f.eng.callNum["render"]; got != 3 {
		t.Errorf("render called %d times, expected 3", got)
	}
	if f.sched.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0 after fatal frame", f.sched.Pending())
	}
	var fault *driver.FaultError
	if err := f.drv.Err(); !errors.As(err, &fault) || fault.Step != "render" || !errors.Is(err, errBoom) {
		t.Errorf("Err() = %v, expected render fault wrapping boom", err)
	}
	if f.drv.Running() {
		t.Error("Running() should be false after a fatal frame")
	}
}

func TestAdvanceFailureSkipsRender(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.eng.failAt["advance"] = 1
	f.init(t)
	f.sched.Step()

	if f.eng.callNum["render"] != 0 {
		t.Error("render should not run after advance failed")
	}
	if f.sched.Pending() != 0 {
		t.Error("no frame should be scheduled after advance failed")
	}
}

func TestPanicInFrameHalts(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.eng.panicOn = "advance"
	f.init(t)
	f.sched.Step()

	var fault *driver.FaultError
	if err := f.drv.Err(); !errors.As(err, &fault) || fault.Step != "advance" {
		t.Errorf("Err() = %v, expected advance fault", err)
	}
	if f.sched.Pending() != 0 {
		t.Error("no frame should be scheduled after a panic")
	}
}

func TestSkipPolicyReschedules(t *testing.T) {
	f := newFixture(t, 10, 10, driver.WithFailurePolicy(driver.PolicySkip, 3))
	f.eng.failAt["render"] = 2
	f.init(t)

	for range 5 {
		f.sched.Step()
	}

	if !f.drv.Running() {
		t.Fatalf("loop halted with %v, expected a single failure to be skipped", f.drv.Err())
	}
	stats := f.drv.Stats()
	if stats.Frames != 5 || stats.Failures != 1 {
		t.Errorf("Stats() = %+v, expected 5 frames and 1 failure", stats)
	}
}

func TestSkipPolicyHaltsAfterConsecutiveFailures(t *testing.T) {
	f := newFixture(t, 10, 10, driver.WithFailurePolicy(driver.PolicySkip, 3))
	f.eng.failAt["render"] = 0 // every frame
	f.init(t)

	for range 10 {
		f.sched.Step()
	}

	if got := f.eng.callNum["render"]; got != 3 {
		t.Errorf("render called %d times, expected 3", got)
	}
	if err := f.drv.Err(); !errors.Is(err, driver.ErrTooManyFailures) || !errors.Is(err, errBoom) {
		t.Errorf("Err() = %v, expected ErrTooManyFailures wrapping boom", err)
	}
	if f.sched.Pending() != 0 {
		t.Error("no frame should be scheduled after the failure budget is spent")
	}
}

func TestStopEndsLoop(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.init(t)
	f.sched.Step()

	f.drv.Stop()
	f.sched.Step()

	if f.eng.callNum["advance"] != 1 {
		t.Errorf("advance called %d times, expected 1", f.eng.callNum["advance"])
	}
	if f.sched.Pending() != 0 {
		t.Error("a stopped driver should not reschedule")
	}
	if !f.drv.Stopped() || f.drv.Err() != nil {
		t.Error("Stop should not be reported as a failure")
	}
}

func TestClickTransform(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"center", 60, 45, 100, 50},
		{"top-left boundary", 10, 20, 0, 0},
		{"bottom-right boundary", 110, 70, 200, 100},
		{"outside left and above", 0, 0, -20, -40},
		{"outside right and below", 160, 95, 300, 150},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 200, 100)
			f.init(t)
			f.el.SetRect(core.BoundingRect{Left: 10, Top: 20, Width: 100, Height: 50})

			if err := f.el.Click(tc.x, tc.y); err != nil {
				t.Fatalf("Click() failed: %v", err)
			}
			if len(f.eng.clicks) != 1 {
				t.Fatalf("engine received %d clicks, expected exactly 1", len(f.eng.clicks))
			}
			got := f.eng.clicks[0]
			if math.Abs(got[0]-tc.wantX) > 1e-9 || math.Abs(got[1]-tc.wantY) > 1e-9 {
				t.Errorf("click(%v, %v) forwarded as %v, expected (%v, %v)", tc.x, tc.y, got, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestClickFailureDoesNotHaltLoop(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.eng.failAt["click"] = 0
	f.init(t)

	if err := f.el.Click(1, 1); !errors.Is(err, errBoom) {
		t.Errorf("Click() error = %v, expected boom", err)
	}
	f.sched.Step()

	if !f.drv.Running() || f.sched.Pending() != 1 {
		t.Error("a click failure must not halt the frame loop")
	}
}

func TestClickBetweenFrames(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.init(t)

	f.sched.Step()
	if err := f.el.Click(5, 5); err != nil {
		t.Fatal(err)
	}
	f.sched.Step()

	expected := []string{"advance", "render", "click", "advance", "render"}
	for i, want := range expected {
		if f.eng.calls[i] != want {
			t.Fatalf("calls = %v, expected %v", f.eng.calls, expected)
		}
	}
	if f.drv.Stats().Clicks != 1 {
		t.Errorf("Stats().Clicks = %d, expected 1", f.drv.Stats().Clicks)
	}
}

func TestClickBeforeInitialize(t *testing.T) {
	f := newFixture(t, 10, 10)
	ev := core.PointerEventAt(1, 1, f.el)
	if err := f.drv.OnClick(ev); !errors.Is(err, driver.ErrNotInitialized) {
		t.Errorf("OnClick() error = %v, expected ErrNotInitialized", err)
	}
}

func TestClickWithoutTarget(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.init(t)
	if err := f.drv.OnClick(core.PointerEvent{ClientX: 1}); !errors.Is(err, driver.ErrNoTarget) {
		t.Errorf("OnClick() error = %v, expected ErrNoTarget", err)
	}
}

func TestBoot(t *testing.T) {
	eng := newRecordingEngine(32, 16)
	engine.Register(engine.Module{
		ID:  "driver-test-boot",
		New: func() (engine.Engine, error) { return eng, nil },
	})

	sched := headless.NewScheduler()
	el := headless.NewElement()
	d, err := driver.Boot(context.Background(), "driver-test-boot", el, sched)
	if err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}
	if d.Engine() != eng {
		t.Error("Boot() should own the registered engine")
	}
	if b := el.Image().Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("surface = %dx%d, expected 32x16", b.Dx(), b.Dy())
	}
}

func TestBootLoadFailure(t *testing.T) {
	sched := headless.NewScheduler()
	el := headless.NewElement()

	_, err := driver.Boot(context.Background(), "driver-test-missing", el, sched)
	if !errors.Is(err, engine.ErrUnknownEngine) {
		t.Errorf("Boot() error = %v, expected ErrUnknownEngine", err)
	}
	if el.SizeCalls() != 0 || sched.Pending() != 0 {
		t.Error("a load failure must not touch the element or schedule frames")
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    driver.FailurePolicy
		wantErr bool
	}{
		{"", driver.PolicyHalt, false},
		{"halt", driver.PolicyHalt, false},
		{"SKIP", driver.PolicySkip, false},
		{" skip ", driver.PolicySkip, false},
		{"retry", driver.PolicyHalt, true},
	}
	for _, tc := range tests {
		got, err := driver.ParsePolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}
