package dto

// SalesMetricsResponse aggregates sales over a date range.
// @Description Sales totals, item counts, profit and daily average
type SalesMetricsResponse struct {
	SaleCount    int64   `json:"total_vendas"`
	ItemsSold    int64   `json:"total_itens_vendidos"`
	TotalProfit  float64 `json:"lucro_total"`
	DailyAverage float64 `json:"media_vendas_dia"`
} // @name SalesMetricsResponse

// SellerMetricsResponse aggregates one seller's sales.
type SellerMetricsResponse struct {
	SellerID   string  `json:"vendedor_id"`
	SellerName string  `json:"vendedor_nome"`
	SaleCount  int64   `json:"total_vendas"`
	Amount     float64 `json:"valor_total"`
} // @name SellerMetricsResponse

// MonthlySalesResponse is one month's totals for charting.
type MonthlySalesResponse struct {
	Month     string  `json:"mes"`
	SaleCount int64   `json:"total_vendas"`
	Amount    float64 `json:"valor_total"`
} // @name MonthlySalesResponse

// StockItemResponse is one row of the stock listing.
type StockItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	ProductName string `json:"produto_nome"`
} // @name StockItemResponse

// CartResponse is the live cart as returned to the caller: current
// lines plus the freshly recomputed aggregates.
type CartResponse struct {
	Items       []CartLineResponse `json:"itens"`
	Total       float64            `json:"total"`
	ItemCount   int                `json:"item_count"`
	DefaultMode string             `json:"modo_padrao"`
} // @name CartResponse

// CartLineResponse is one live cart line, including the resolve reason
// for the line's effective price mode.
type CartLineResponse struct {
	ProductID  string  `json:"produto_id"`
	Name       string  `json:"nome"`
	Quantity   int     `json:"quantidade"`
	UnitPrice  float64 `json:"preco_unitario"`
	Mode       string  `json:"modo"`
	ModeReason string  `json:"modo_motivo,omitempty"`
} // @name CartLineResponse
