package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EnsureTopics はトピックが存在しなければ作成する
// 既に存在する場合はエラーにしない
func EnsureTopics(ctx context.Context, brokers []string, logger *zap.Logger, topics ...string) error {
	if len(brokers) == 0 {
		return errors.New("Kafkaブローカーが設定されていません")
	}

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("Kafkaへの接続に失敗: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("コントローラーの取得に失敗: %w", err)
	}
	controllerConn, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("コントローラーへの接続に失敗: %w", err)
	}
	defer controllerConn.Close()

	for _, topic := range topics {
		err := controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		switch {
		case err == nil:
			logger.Info("トピックを作成しました", zap.String("topic", topic))
		case errors.Is(err, kafka.TopicAlreadyExists):
			logger.Debug("トピックは既に存在します", zap.String("topic", topic))
		default:
			return fmt.Errorf("トピック %s の作成に失敗: %w", topic, err)
		}
	}
	return nil
}
