package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Existencias-api/internal/domain"
	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
)

// CreateProductUseCase crea un producto junto con su inventario inicial y la
// primera entrada del historial como una unidad atómica: nunca queda un
// producto sin fila de stock.
type CreateProductUseCase struct {
	txRunner      TxRunner
	companyRepo   repository.CompanyRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	typeRepo      repository.ProductTypeRepository
	productRepo   repository.ProductRepository
	validate      *validator.Validate
}

// NewCreateProductUseCase construye el caso de uso.
func NewCreateProductUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	typeRepo repository.ProductTypeRepository,
	productRepo repository.ProductRepository,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		txRunner:      txRunner,
		companyRepo:   companyRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		typeRepo:      typeRepo,
		productRepo:   productRepo,
		validate:      newValidator(),
	}
}

// ComponentInput componente de un bundle con su cantidad por unidad de bundle.
type ComponentInput struct {
	ProductID string `validate:"required,uuid4"`
	Quantity  int64  `validate:"required,min=1"`
}

// CreateProductInput entrada tipada y completa de la operación. Se valida en
// lote antes de cualquier efecto secundario.
type CreateProductInput struct {
	CompanyID         string `validate:"required,uuid4"`
	SKU               string `validate:"required,max=64"`
	Name              string `validate:"required,max=255"`
	Description       string `validate:"max=2000"`
	Price             decimal.Decimal
	SupplierID        *string `validate:"omitempty,uuid4"`
	ProductTypeID     *string `validate:"omitempty,uuid4"`
	LowStockThreshold *int64  `validate:"omitempty,min=0"`
	IsBundle          bool
	Components        []ComponentInput `validate:"omitempty,dive"`
	WarehouseID       string           `validate:"required,uuid4"`
	InitialQuantity   int64            `validate:"min=0"`
}

// CreatedProduct identificadores del recurso creado. InventoryID queda vacío
// para bundles: su disponibilidad se deriva de los componentes.
type CreatedProduct struct {
	ProductID   string
	InventoryID string
}

// Execute valida la entrada, verifica la unicidad del SKU dentro de la empresa
// y persiste producto + inventario + historial en una sola transacción.
func (uc *CreateProductUseCase) Execute(ctx context.Context, input CreateProductInput) (*CreatedProduct, error) {
	if err := uc.validateInput(ctx, input); err != nil {
		return nil, err
	}

	// Unicidad de SKU acotada por tenant: (company_id, sku), nunca global.
	existing, err := uc.productRepo.GetByCompanyAndSKU(ctx, input.CompanyID, input.SKU)
	if err != nil {
		return nil, fmt.Errorf("verificar sku: %w: %w", domain.ErrInternal, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("sku %q ya existe en la empresa: %w", input.SKU, domain.ErrConflict)
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         input.CompanyID,
		SKU:               input.SKU,
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		SupplierID:        input.SupplierID,
		ProductTypeID:     input.ProductTypeID,
		LowStockThreshold: input.LowStockThreshold,
		IsBundle:          input.IsBundle,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var inv *entity.Inventory
	if !input.IsBundle {
		inv = &entity.Inventory{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			WarehouseID: input.WarehouseID,
			Quantity:    input.InitialQuantity,
			LastUpdated: now,
		}
	}

	// Tres inserciones, una transacción: si el almacén rechaza cualquiera
	// (p. ej. carrera perdida contra otro insert) se revierte la unidad
	// completa y el error llega con su tipo preservado.
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		histRepo repository.InventoryHistoryRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if input.IsBundle {
			components := make([]entity.BundleComponent, 0, len(input.Components))
			for _, c := range input.Components {
				components = append(components, entity.BundleComponent{
					BundleID:    product.ID,
					ComponentID: c.ProductID,
					Quantity:    c.Quantity,
				})
			}
			return productRepo.AddBundleComponents(ctx, product.ID, components)
		}
		if err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
		return histRepo.Create(ctx, &entity.InventoryHistory{
			ID:           uuid.New().String(),
			InventoryID:  inv.ID,
			ChangeAmount: input.InitialQuantity,
			NewQuantity:  input.InitialQuantity,
			Reason:       entity.ReasonInitialStock,
			ChangeDate:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	created := &CreatedProduct{ProductID: product.ID}
	if inv != nil {
		created.InventoryID = inv.ID
	}
	return created, nil
}

// validateInput acumula TODOS los campos ofensivos (formato, rangos y
// referencias) en un solo ValidationError antes de tocar el almacén.
func (uc *CreateProductUseCase) validateInput(ctx context.Context, input CreateProductInput) error {
	verr := &domain.ValidationError{}
	if err := collectStructErrors(verr, uc.validate.Struct(input)); err != nil {
		return fmt.Errorf("validar entrada: %w: %w", domain.ErrInternal, err)
	}

	if input.Price.IsNegative() {
		verr.Add("price", "min", "el precio no puede ser negativo")
	}
	if input.IsBundle {
		if len(input.Components) == 0 {
			verr.Add("components", "required", "un bundle necesita al menos un componente")
		}
		if input.InitialQuantity != 0 {
			verr.Add("initial_quantity", "excluded", "el stock de un bundle se deriva de sus componentes")
		}
	} else if len(input.Components) > 0 {
		verr.Add("components", "excluded", "solo los bundles llevan componentes")
	}

	// Referencias: se comprueban todas aunque alguna falle, para reportar el
	// lote completo. Solo si el formato del campo ya pasó.
	if input.CompanyID != "" && fieldOK(verr, "company_id") {
		company, err := uc.companyRepo.GetByID(ctx, input.CompanyID)
		if err != nil {
			return fmt.Errorf("verificar empresa: %w: %w", domain.ErrInternal, err)
		}
		if company == nil {
			verr.Add("company_id", "exists", "la empresa no existe")
		}
	}
	if input.WarehouseID != "" && fieldOK(verr, "warehouse_id") {
		warehouse, err := uc.warehouseRepo.GetByID(ctx, input.WarehouseID)
		if err != nil {
			return fmt.Errorf("verificar bodega: %w: %w", domain.ErrInternal, err)
		}
		switch {
		case warehouse == nil:
			verr.Add("warehouse_id", "exists", "la bodega no existe")
		case warehouse.CompanyID != input.CompanyID:
			verr.Add("warehouse_id", "exists", "la bodega no pertenece a la empresa")
		}
	}
	if input.SupplierID != nil && fieldOK(verr, "supplier_id") {
		supplier, err := uc.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return fmt.Errorf("verificar proveedor: %w: %w", domain.ErrInternal, err)
		}
		if supplier == nil {
			verr.Add("supplier_id", "exists", "el proveedor no existe")
		}
	}
	if input.ProductTypeID != nil && fieldOK(verr, "product_type_id") {
		productType, err := uc.typeRepo.GetByID(ctx, *input.ProductTypeID)
		if err != nil {
			return fmt.Errorf("verificar tipo de producto: %w: %w", domain.ErrInternal, err)
		}
		if productType == nil {
			verr.Add("product_type_id", "exists", "el tipo de producto no existe")
		}
	}
	for _, c := range input.Components {
		if c.ProductID == "" {
			continue
		}
		component, err := uc.productRepo.GetByID(ctx, c.ProductID)
		if err != nil {
			return fmt.Errorf("verificar componente: %w: %w", domain.ErrInternal, err)
		}
		switch {
		case component == nil || component.CompanyID != input.CompanyID:
			verr.Add("components", "exists", "componente "+c.ProductID+" no existe en la empresa")
		case component.IsBundle:
			verr.Add("components", "excluded", "componente "+c.ProductID+" es un bundle; no se permiten bundles anidados")
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// fieldOK indica si el campo no acumuló aún errores de formato.
func fieldOK(verr *domain.ValidationError, field string) bool {
	for _, f := range verr.Fields {
		if f.Field == field {
			return false
		}
	}
	return true
}
