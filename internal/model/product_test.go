package model

import (
	"testing"
	"time"
)

func TestProduct(t *testing.T) {
	now := time.Now()
	variant := "Morning"
	p := Product{
		ProductID:   42,
		VariantID:   7,
		ProductName: "Canoe Trip",
		VariantName: &variant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if p.ProductID != 42 {
		t.Errorf("Product.ProductID = %v, want %v", p.ProductID, 42)
	}
	if p.VariantID != 7 {
		t.Errorf("Product.VariantID = %v, want %v", p.VariantID, 7)
	}
	if p.ProductName != "Canoe Trip" {
		t.Errorf("Product.ProductName = %v, want %v", p.ProductName, "Canoe Trip")
	}
	if p.VariantName == nil || *p.VariantName != "Morning" {
		t.Errorf("Product.VariantName = %v, want Morning", p.VariantName)
	}
}

func TestProductNilVariantName(t *testing.T) {
	var p Product
	if p.VariantName != nil {
		t.Errorf("zero Product.VariantName = %v, want nil", p.VariantName)
	}
}
