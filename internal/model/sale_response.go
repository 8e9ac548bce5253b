package model

import "time"

// SaleResponse is the invoice projection returned by the sales endpoints
type SaleResponse struct {
	ID               uint               `json:"id"`
	TanggalPenjualan time.Time          `json:"tanggal_penjualan"`
	Operator         string             `json:"operator"`
	UserID           uint               `json:"id_user"`
	CustomerID       *uint              `json:"id_pelanggan"`
	Customer         string             `json:"pelanggan"`
	TotalHarga       int64              `json:"total_harga"`
	Diskon           int64              `json:"diskon"`
	Penyesuaian      int64              `json:"penyesuaian"`
	TotalBayar       int64              `json:"total_bayar"`
	Bayar            int64              `json:"bayar"`
	Kembalian        int64              `json:"kembalian"`
	Items            []SaleItemResponse `json:"items,omitempty"`
}

type SaleItemResponse struct {
	ID             uint    `json:"id"`
	ProductID      uint    `json:"id_produk"`
	Nama           string  `json:"nama"`
	Barcode        string  `json:"barcode"`
	EventProductID *uint   `json:"id_event_produk,omitempty"`
	HargaJual      int64   `json:"harga_jual"`
	HargaBeli      int64   `json:"harga_beli"`
	Diskon         int64   `json:"diskon"`
	DiskonEvent    float64 `json:"diskon_event"`
	Qty            int     `json:"qty"`
	TotalHarga     int64   `json:"total_harga"`
}

// ToResponse flattens the sale and whatever relations were preloaded
func (s *Sale) ToResponse(withItems bool) SaleResponse {
	resp := SaleResponse{
		ID:               s.ID,
		TanggalPenjualan: s.TanggalPenjualan,
		UserID:           s.UserID,
		CustomerID:       s.CustomerID,
		Customer:         "Umum",
		TotalHarga:       s.TotalHarga,
		Diskon:           s.Diskon,
		Penyesuaian:      s.Penyesuaian,
		TotalBayar:       s.TotalBayar,
		Bayar:            s.Bayar,
		Kembalian:        s.Kembalian,
	}
	if s.User != nil {
		resp.Operator = s.User.Nama
	}
	if s.Customer != nil {
		resp.Customer = s.Customer.Nama
	}
	if !withItems {
		return resp
	}

	resp.Items = make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		ir := SaleItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			EventProductID: item.EventProductID,
			HargaJual:      item.HargaJual,
			HargaBeli:      item.HargaBeli,
			Diskon:         item.Diskon,
			DiskonEvent:    item.DiskonEvent,
			Qty:            item.Qty,
			TotalHarga:     item.TotalHarga,
		}
		if item.Product != nil {
			ir.Nama = item.Product.Nama
			ir.Barcode = item.Product.Barcode
		}
		resp.Items[i] = ir
	}
	return resp
}
