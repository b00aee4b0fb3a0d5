package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"
)

type dialFunc func(ctx context.Context, network, address string) (io.Closer, error)

// Pinger はブローカーへの接続可否でKafkaの疎通を確認する
type Pinger struct {
	brokers []string
	dial    dialFunc
}

// NewPinger は Pinger を作成する
func NewPinger(brokers []string) *Pinger {
	return &Pinger{
		brokers: brokers,
		dial: func(ctx context.Context, network, address string) (io.Closer, error) {
			conn, err := kafka.DialContext(ctx, network, address)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
}

// Ping はいずれかのブローカーに接続できれば nil を返す
func (p *Pinger) Ping(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("Kafkaブローカーが設定されていません")
	}

	var errs []error
	for _, broker := range p.brokers {
		conn, err := p.dial(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", broker, err))
			continue
		}
		_ = conn.Close()
		return nil
	}
	return fmt.Errorf("Kafkaブローカーに接続できません: %w", errors.Join(errs...))
}
