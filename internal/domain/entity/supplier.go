package entity

// DefaultLeadTimeDays plazo de entrega por defecto de un proveedor para un producto.
const DefaultLeadTimeDays = 7

// Supplier proveedor de productos.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail *string
	Phone        *string
}

// SupplierProduct relación N:M proveedor-producto con su plazo de entrega.
type SupplierProduct struct {
	SupplierID   int64
	ProductID    int64
	CompanyID    *int64
	LeadTimeDays int
}
