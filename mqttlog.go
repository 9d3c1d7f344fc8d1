package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// mqttLogger adapts zerolog to the paho logger interface.
type mqttLogger struct {
	level zerolog.Level
}

func newMqttLogger(level zerolog.Level) mqttLogger {
	return mqttLogger{level: level}
}

func (l mqttLogger) Println(v ...interface{}) {
	log.WithLevel(l.level).Str("component", "mqtt").Msg(fmt.Sprint(v...))
}

func (l mqttLogger) Printf(format string, v ...interface{}) {
	log.WithLevel(l.level).Str("component", "mqtt").Msgf(format, v...)
}
