package stream

import (
	"context"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Publisher is the part of mqtt.Client the Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	client    Publisher
	animation Animation
	topic     string
	qos       byte
	interval  time.Duration
	log       zerolog.Logger
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Publisher, animation Animation, logger zerolog.Logger) *Streamer {
	s := new(Streamer)
	s.client = client
	s.animation = animation
	s.topic = config.Mqtt.Topics.Stream
	s.qos = config.Mqtt.Qos
	frameRate := config.FrameRate
	if frameRate <= 0 {
		frameRate = 30
	}
	s.interval = time.Duration(float64(time.Second) / frameRate)
	s.log = logger

	return s
}

// SendFrame calculates the frame for runtimeMs and publishes it.
func (s *Streamer) SendFrame(runtimeMs int64) error {
	f := s.animation.CalculateFrame(runtimeMs)
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, s.qos, false, b)
	token.Wait()
	return token.Error()
}

// Run causes the Streamer to send Frames continuously until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()

	start := time.Now()
	s.log.Info().Dur("interval", s.interval).Str("topic", s.topic).Msg("streaming")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-publishTimer.C:
			if err := s.SendFrame(now.Sub(start).Milliseconds()); err != nil {
				s.log.Warn().Err(err).Msg("publish frame")
			}
		}
	}
}
