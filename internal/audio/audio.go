package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Synth generates an engine note from the crankshaft speed. An inline-4
// four-stroke fires twice per revolution, so the fundamental tracks
// RPM/60 × 2; harmonics and a low-pass filter shape it into an exhaust
// burble instead of a raw buzz.
type Synth struct {
	Stream *portaudio.Stream

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	mu        sync.Mutex
	rpm       float64
	rpmSmooth float64

	Active bool
}

func NewSynth() *Synth {
	// 0.15 second delay, just enough room tone to stop the dry pulses
	// sounding like a metronome.
	delayLen := int(float64(SampleRate) * 0.15)

	return &Synth{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (s *Synth) Start() error {
	portaudio.Initialize()

	// Output only (0 in, 2 out); duplex streams often fail on Linux when
	// input and output devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.ProcessAudio)
	if err != nil {
		fmt.Printf("AUDIO ERROR: %v\n", err)
		return err
	}
	if err := stream.Start(); err != nil {
		fmt.Printf("STREAM START ERROR: %v\n", err)
		return err
	}

	s.Stream = stream
	s.Active = true
	return nil
}

func (s *Synth) Stop() {
	if s.Stream != nil {
		s.Stream.Stop()
		s.Stream.Close()
	}
	portaudio.Terminate()
	s.Active = false
}

// SetRPM feeds the current crankshaft speed into the synthesizer. Safe to
// call from the render loop while the audio callback runs.
func (s *Synth) SetRPM(rpm float64) {
	s.mu.Lock()
	s.rpm = rpm
	s.mu.Unlock()
}

// Triangle wave: smooth, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low pass filter (one pole).
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Synth) ProcessAudio(in []float32, out [][]float32) {
	s.mu.Lock()
	targetRPM := s.rpm
	s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		// Slow glide so throttle changes sweep the pitch instead of
		// stepping it.
		s.rpmSmooth = s.rpmSmooth*0.9995 + targetRPM*0.0005

		// Firing fundamental: two power strokes per crank revolution.
		f0 := s.rpmSmooth / 60.0 * 2.0
		if f0 < 1 {
			f0 = 1
		}

		// Stack of harmonics with slight stereo detune.
		sampleL := 0.0
		sampleR := 0.0
		for h := 1; h <= 4; h++ {
			f := f0 * float64(h)
			g := 1.0 / float64(h)
			sampleL += triangle(s.Time*f*0.999) * g
			sampleR += triangle(s.Time*f*1.001) * g
		}

		// Firing pulse envelope keeps the individual power strokes audible
		// at idle and blends into a drone at speed.
		pulse := 0.6 + 0.4*math.Max(0, math.Sin(2*math.Pi*f0*s.Time))
		sampleL *= pulse * 0.4
		sampleR *= pulse * 0.4

		// Cutoff opens with engine speed.
		cutoff := 120.0 + s.rpmSmooth*0.4

		var outL, outR float64
		outL, s.FilterState[0] = lpf(sampleL, cutoff, dt, s.FilterState[0])
		outR, s.FilterState[1] = lpf(sampleR, cutoff, dt, s.FilterState[1])

		delayL := s.DelayLine[0][s.DelayHead]
		delayR := s.DelayLine[1][s.DelayHead]

		mixL := outL + delayL*0.25 + delayR*0.1
		mixR := outR + delayR*0.25 + delayL*0.1

		s.DelayLine[0][s.DelayHead] = mixL * 0.5
		s.DelayLine[1][s.DelayHead] = mixR * 0.5
		s.DelayHead = (s.DelayHead + 1) % len(s.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.Time += dt
	}
}
