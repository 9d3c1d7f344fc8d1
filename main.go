package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/stream"
)

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	addr := flag.String("addr", ":3000", "HTTP listen address.")
	static := flag.String("static", "client/dist", "Directory of client pages.")
	debug := flag.Bool("debug", false, "Log tween lifecycle at debug level.")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	log.Info().
		Str("broker", config.Mqtt.URL).
		Float64("fps", config.FrameRate).
		Int("layers", len(config.Layers)).
		Int("tweens", len(config.Tweens)).
		Msg("config loaded")

	controller, err := stream.NewController(config, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("build scene")
	}

	mqtt.ERROR = newMqttLogger(zerolog.ErrorLevel)
	mqtt.CRITICAL = newMqttLogger(zerolog.FatalLevel)
	mqtt.WARN = newMqttLogger(zerolog.WarnLevel)
	options := mqtt.NewClientOptions().
		AddBroker(config.Mqtt.URL).
		SetClientID(config.Mqtt.ClientID).
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Info().Msg("connected")
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn().Err(err).Msg("connection lost")
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("connect")
	}
	defer client.Disconnect(250)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewApi(controller, *static, log.Logger)
	go func() {
		if err := server.Serve(ctx, *addr); err != nil {
			log.Error().Err(err).Msg("http server")
		}
	}()

	streamer := stream.NewStreamer(config, client, controller, log.Logger)
	if err := streamer.Run(ctx); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("streamer")
	}
	log.Info().Msg("shutting down")
}
