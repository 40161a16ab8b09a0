package notification

import (
	"fmt"
	"log"

	"github.com/BruksfildServices01/court-reservations/internal/config"
)

// FromConfig wires every sink named in NOTIFY_SINKS. The returned close
// func releases broker connections.
func FromConfig(cfg *config.Config) (Sink, func(), error) {
	var (
		sinks   []Sink
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, name := range cfg.Sinks() {
		switch name {
		case "log":
			sinks = append(sinks, NewLogSink())
		case "smtp":
			s, err := NewMailSink(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("smtp sink: %w", err)
			}
			sinks = append(sinks, s)
		case "amqp":
			s, err := NewAMQPSink(cfg.RabbitURL, cfg.NotifyExchange)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("amqp sink: %w", err)
			}
			sinks = append(sinks, s)
			closers = append(closers, func() {
				if err := s.Close(); err != nil {
					log.Println("[notify] amqp close:", err)
				}
			})
		case "s3":
			s, err := NewReceiptSink(S3Options{
				Endpoint:  cfg.S3Endpoint,
				Region:    cfg.S3Region,
				Bucket:    cfg.S3Bucket,
				AccessKey: cfg.S3AccessKey,
				SecretKey: cfg.S3SecretKey,
			})
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("s3 sink: %w", err)
			}
			sinks = append(sinks, s)
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown notification sink %q", name)
		}
	}

	if len(sinks) == 0 {
		sinks = append(sinks, NewLogSink())
	}
	log.Printf("[notify] sinks enabled: %v", cfg.Sinks())

	if len(sinks) == 1 {
		return sinks[0], closeAll, nil
	}
	return NewMultiSink(sinks...), closeAll, nil
}
