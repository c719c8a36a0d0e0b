package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/services"
)

func newProductsCommand(rt *runtime) *cobra.Command {
	var (
		page             models.PageRequest
		active, inactive bool
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Long: `List and manage your product catalog. Owners and managers only.

Examples:
  supplierctl products --active
  supplierctl products create --name "Rice 5kg" --price 4200 --stock 30
  supplierctl products toggle 2`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			var filter *bool
			switch {
			case active && inactive:
				return services.NewDomainError(services.ErrorTypeValidation, "--active and --inactive cannot be combined", services.ErrInvalidInput)
			case active:
				filter = &active
			case inactive:
				off := false
				filter = &off
			}

			products, err := rt.deps.Console.Products(cmd.Context(), page, filter)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(products.Items))
			for _, p := range products.Items {
				state := "active"
				if !p.IsActive {
					state = "inactive"
				}
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Name,
					p.SKU,
					fmt.Sprintf("%s %s", p.Price, p.Currency),
					strconv.Itoa(p.StockQty),
					rt.styles.Status(state),
				})
			}
			rt.printTable("Catalog", []string{"ID", "Name", "SKU", "Price", "Stock", "State"}, rows, "No products")
			printPageFooter(rt, products)
			return nil
		}),
	}
	addPageFlags(cmd, &page)
	cmd.Flags().BoolVar(&active, "active", false, "only active products")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "only inactive products")

	var input models.ProductInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			product, err := rt.deps.Console.CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Product %d: %s\n", product.ID, product.Name)
			return nil
		}),
	}
	addProductFlags(create, &input)
	cmd.AddCommand(create)

	var changes models.ProductInput
	update := actionCommand(rt, "update", "product", "Change a product", func(cmd *cobra.Command, id int64) error {
		product, err := rt.findProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		body, err := productInput(product)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			body.Name = changes.Name
		}
		if flags.Changed("description") {
			body.Description = changes.Description
		}
		if flags.Changed("price") {
			body.Price = changes.Price
		}
		if flags.Changed("currency") {
			body.Currency = changes.Currency
		}
		if flags.Changed("sku") {
			body.SKU = changes.SKU
		}
		if flags.Changed("stock") {
			body.StockQty = changes.StockQty
		}
		_, err = rt.deps.Console.UpdateProduct(cmd.Context(), id, body)
		return err
	})
	addProductFlags(update, &changes)
	cmd.AddCommand(update)

	cmd.AddCommand(actionCommand(rt, "toggle", "product", "Activate or deactivate a product", func(cmd *cobra.Command, id int64) error {
		product, err := rt.findProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		_, err = rt.deps.Console.ToggleProduct(cmd.Context(), *product)
		return err
	}))

	cmd.AddCommand(actionCommand(rt, "delete", "product", "Delete a product", func(cmd *cobra.Command, id int64) error {
		return rt.deps.Console.DeleteProduct(cmd.Context(), id)
	}))
	return cmd
}

func addProductFlags(cmd *cobra.Command, input *models.ProductInput) {
	flags := cmd.Flags()
	flags.StringVar(&input.Name, "name", "", "product name")
	flags.StringVar(&input.Description, "description", "", "product description")
	flags.Float64Var(&input.Price, "price", 0, "unit price")
	flags.StringVar(&input.Currency, "currency", "KZT", "three-letter currency code")
	flags.StringVar(&input.SKU, "sku", "", "stock keeping unit")
	flags.IntVar(&input.StockQty, "stock", 0, "quantity in stock")
}

func productInput(p *models.Product) (models.ProductInput, error) {
	price, err := p.Price.Float64()
	if err != nil {
		return models.ProductInput{}, fmt.Errorf("product %d has invalid price %q: %w", p.ID, p.Price, err)
	}
	active := p.IsActive
	return models.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Currency:    p.Currency,
		SKU:         p.SKU,
		StockQty:    p.StockQty,
		IsActive:    &active,
	}, nil
}

// findProduct pages through the catalog looking for id
func (rt *runtime) findProduct(ctx context.Context, id int64) (*models.Product, error) {
	req := models.PageRequest{Page: 1, Size: models.MaxPageSize}
	for {
		products, err := rt.deps.Console.Products(ctx, req, nil)
		if err != nil {
			return nil, err
		}
		for i := range products.Items {
			if products.Items[i].ID == id {
				return &products.Items[i], nil
			}
		}
		if !products.HasNext() {
			return nil, services.NewDomainError(services.ErrorTypeNotFound, fmt.Sprintf("Product %d not found", id), nil)
		}
		req.Page++
	}
}
