// Package pdf genera el comprobante imprimible del pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del comercio  │  N° Pedido + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Teléfono + Dirección de entrega           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Entrega / TOTAL                         │
//	│  CUOTAS (solo boleto): N° | Vencimiento | Monto | Estado     │
//	│  FOOTER: método de pago + notas                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tu-usuario/pedidos-pro/internal/application/orders"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

var _ orders.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles de métodos de pago y estados.
var (
	methodLabels = map[entity.PaymentMethod]string{
		entity.PaymentPix:        "PIX",
		entity.PaymentCreditCard: "Cartão de Crédito",
		entity.PaymentDebitCard:  "Cartão de Débito",
		entity.PaymentCash:       "Dinheiro",
		entity.PaymentBoleto:     "Boleto Parcelado",
	}
	statusLabels = map[entity.Status]string{
		entity.StatusPending:   "Pendente",
		entity.StatusConfirmed: "Confirmado",
		entity.StatusInRoute:   "Em rota",
		entity.StatusDelivered: "Entregue",
	}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa orders.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre del comercio.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateOrderReceipt genera el comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de Pedido", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	if order.IsBoleto() && len(order.Installments) > 0 {
		m.AddRows(line.NewRow(2))
		for _, r := range installmentRows(order.Installments) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(order) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: comercio (izq) y N° de pedido + fecha + estado (der).
func (g *MarotoReceiptGenerator) headerRow(order *entity.Order) core.Row {
	numPedido := "#" + shortID(order.ID)
	fecha := order.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprovante de Pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO "+numPedido, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Data: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Status: "+statusLabels[order.Status], props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente y dirección de entrega congelada en el pedido.
func customerRow(order *entity.Order) core.Row {
	address := order.Street
	if order.StreetNumber != "" {
		address += ", " + order.StreetNumber
	}
	if order.Complement != "" {
		address += " - " + order.Complement
	}
	if order.Neighborhood != "" {
		address += ", " + order.Neighborhood
	}
	address += fmt.Sprintf(" - %s/%s", order.City, order.State)
	if order.ZipCode != "" {
		address += " - CEP " + order.ZipCode
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", order.CustomerName, order.CustomerPhone), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Entrega: "+address, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 6, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por ítem, con precio congelado al momento de la compra.
func tableItemRows(items []*entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				item.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(item.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(item.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: subtotal, tarifa de entrega y total.
func totalsRow(order *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Entrega:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(formatMoney(order.Subtotal)),
			value(formatMoney(order.DeliveryFee)),
			grandValue(formatMoney(order.Total)),
		),
		col.New(3),
	)
}

// installmentRows: cronograma de cuotas del boleto con estado de pago.
func installmentRows(installments []*entity.Installment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PARCELAS DO BOLETO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, inst := range installments {
		estado := "Em aberto"
		if inst.IsPaid() {
			estado = "Paga em " + inst.PaidAt.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("Parcela %d", inst.Number),
				props.Text{Size: 8, Top: 1, Left: 2},
			)),
			col.New(3).Add(text.New(
				"Venc.: "+inst.DueDate.Format("02/01/2006"),
				props.Text{Size: 8, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(inst.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 2},
			)),
			col.New(4).Add(text.New(
				estado,
				props.Text{Size: 8, Top: 1, Color: colorGray},
			)),
		))
	}
	return rows
}

// footerRows: método de pago, estado de pago y notas.
func footerRows(order *entity.Order) []core.Row {
	pago := "Pagamento pendente"
	if order.IsPaid() {
		pago = "Pago em " + order.PaidAt.Format("02/01/2006")
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Forma de pagamento: %s   |   %s",
				methodLabels[order.PaymentMethod], pago),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
	if order.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Observações: "+order.Notes, props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// formatMoney formatea un monto como moneda brasileña: R$ 1.234,56.
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return ptBR.Sprintf("R$ %v", number.Decimal(f, number.Scale(2)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
