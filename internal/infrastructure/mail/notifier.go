package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/config"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
	"github.com/tu-usuario/stock-ledger/pkg/metrics"
)

var _ ledger.Notifier = (*LowStockNotifier)(nil)

// LowStockNotifier envía por correo las alertas de stock bajo a todos los
// administradores. Si SMTP no está configurado (host vacío) solo loguea.
type LowStockNotifier struct {
	cfg      config.SMTPConfig
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewLowStockNotifier crea el notificador de stock bajo.
func NewLowStockNotifier(cfg config.SMTPConfig, userRepo repository.UserRepository, log *logger.Logger) *LowStockNotifier {
	return &LowStockNotifier{cfg: cfg, userRepo: userRepo, log: log}
}

// LowStock notifica que un artículo quedó en o bajo el umbral tras una venta.
func (n *LowStockNotifier) LowStock(ctx context.Context, article entity.Article, store entity.Store) error {
	metrics.LowStockAlerts.Inc()

	if n.cfg.Host == "" {
		n.log.Warn().
			Str("article", article.Name).
			Str("store", store.Name).
			Int64("quantity", article.Quantity).
			Msg("stock bajo (SMTP deshabilitado, alerta solo logueada)")
		return nil
	}

	recipients, err := n.userRepo.ListAdminEmails()
	if err != nil {
		return fmt.Errorf("listar correos de admins: %w", err)
	}
	if len(recipients) == 0 {
		n.log.Warn().Msg("alerta de stock bajo sin destinatarios: no hay administradores")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Alerta de stock bajo: %s", article.Name))
	m.SetBody("text/html", fmt.Sprintf(`
		<p>El artículo <strong>%s</strong> de la tienda <strong>%s</strong>
		quedó con <strong>%d</strong> unidades (umbral: %d).</p>
		<p>Considere reaprovisionar desde la central.</p>`,
		article.Name, store.Name, article.Quantity, entity.LowStockThreshold))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo de stock bajo: %w", err)
	}

	n.log.Info().
		Str("article", article.Name).
		Str("store", store.Name).
		Int("recipients", len(recipients)).
		Msg("alerta de stock bajo enviada")
	return nil
}
