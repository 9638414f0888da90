package events

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/avendano/puntoventa-api/internal/application/sales"
)

var _ sales.DashboardNotifier = (*RedisNotifier)(nil)

// Canal de invalidación; el payload es el negocio cuyos agregados quedaron viejos.
const canalDashboard = "dashboard:invalidar"

// RedisNotifier publica la señal de invalidación del dashboard por pub/sub.
// Fire-and-forget: sin suscriptores el mensaje se pierde, y un error de
// publicación solo se registra en el log.
type RedisNotifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedis crea y valida un cliente go-redis a partir de la URL.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// NewRedisNotifier construye el notificador.
func NewRedisNotifier(rdb *redis.Client, log zerolog.Logger) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, log: log}
}

// InvalidarDashboard publica el negocio_id en el canal de invalidación.
func (n *RedisNotifier) InvalidarDashboard(ctx context.Context, negocioID string) {
	if err := n.rdb.Publish(ctx, canalDashboard, negocioID).Err(); err != nil {
		n.log.Warn().
			Err(err).
			Str("negocio_id", negocioID).
			Msg("no se pudo publicar la invalidación del dashboard")
	}
}
