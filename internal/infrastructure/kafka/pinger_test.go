package kafka

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestPinger_Ping(t *testing.T) {
	refused := errors.New("connection refused")

	t.Run("最初のブローカーに接続できる", func(t *testing.T) {
		conn := &fakeConn{}
		var dialed []string
		p := &Pinger{brokers: []string{"kafka-1:9092", "kafka-2:9092"}, dial: func(ctx context.Context, network, address string) (io.Closer, error) {
			dialed = append(dialed, address)
			return conn, nil
		}}

		require.NoError(t, p.Ping(context.Background()))
		assert.Equal(t, []string{"kafka-1:9092"}, dialed)
		assert.True(t, conn.closed)
	})

	t.Run("落ちているブローカーは飛ばす", func(t *testing.T) {
		conn := &fakeConn{}
		p := &Pinger{brokers: []string{"kafka-1:9092", "kafka-2:9092"}, dial: func(ctx context.Context, network, address string) (io.Closer, error) {
			if address == "kafka-1:9092" {
				return nil, refused
			}
			return conn, nil
		}}

		require.NoError(t, p.Ping(context.Background()))
		assert.True(t, conn.closed)
	})

	t.Run("すべて失敗すればエラー", func(t *testing.T) {
		p := &Pinger{brokers: []string{"kafka-1:9092", "kafka-2:9092"}, dial: func(ctx context.Context, network, address string) (io.Closer, error) {
			return nil, refused
		}}

		err := p.Ping(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, refused)
		assert.Contains(t, err.Error(), "kafka-2:9092")
	})

	t.Run("ブローカー未設定", func(t *testing.T) {
		assert.Error(t, NewPinger(nil).Ping(context.Background()))
	})

	t.Run("接続できないアドレス", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, NewPinger([]string{"127.0.0.1:1"}).Ping(ctx))
	})
}
