package console

import (
	"context"
	"fmt"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
	"github.com/supplykz/supplier-console/utils"
)

// Products lists the catalog, optionally only active or inactive products
func (c *Console) Products(ctx context.Context, page models.PageRequest, isActive *bool) (*models.Page[models.Product], error) {
	if err := c.authorize(permissions.ManageProducts); err != nil {
		return nil, err
	}
	return c.data.MyProducts(ctx, page, isActive)
}

// CreateProduct validates input and adds it to the catalog
func (c *Console) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := c.authorize(permissions.ManageProducts); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	product, err := c.data.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	c.success("Product created successfully")
	return product, nil
}

// UpdateProduct validates input and replaces a product
func (c *Console) UpdateProduct(ctx context.Context, productID int64, input models.ProductInput) (*models.Product, error) {
	if err := c.authorize(permissions.ManageProducts); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	product, err := c.data.UpdateProduct(ctx, productID, input)
	if err != nil {
		return nil, err
	}
	c.success("Product updated successfully")
	return product, nil
}

// ToggleProduct flips a product between active and inactive
func (c *Console) ToggleProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := c.authorize(permissions.ManageProducts); err != nil {
		return nil, err
	}
	price, err := product.Price.Float64()
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeValidation, fmt.Sprintf("invalid price %q", product.Price), err)
	}
	active := !product.IsActive
	input := models.ProductInput{
		Name:        product.Name,
		Description: product.Description,
		Price:       price,
		Currency:    product.Currency,
		SKU:         product.SKU,
		StockQty:    product.StockQty,
		IsActive:    &active,
	}

	updated, err := c.data.UpdateProduct(ctx, product.ID, input)
	if err != nil {
		return nil, err
	}
	if active {
		c.success("Product activated successfully")
	} else {
		c.success("Product deactivated successfully")
	}
	return updated, nil
}

// DeleteProduct removes a product from the catalog
func (c *Console) DeleteProduct(ctx context.Context, productID int64) error {
	if err := c.guard(ctx, permissions.ManageProducts, confirmDeleteProduct); err != nil {
		return err
	}
	if err := c.data.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	c.success("Product deleted successfully")
	return nil
}

// Team lists the supplier's staff
func (c *Console) Team(ctx context.Context) ([]models.StaffMember, error) {
	if err := c.authorize(permissions.ManageTeam); err != nil {
		return nil, err
	}
	return c.data.Staff(ctx)
}

// AddStaff is refused by the backend; staff join through registration
func (c *Console) AddStaff(ctx context.Context, email string) error {
	if err := c.authorize(permissions.ManageTeam); err != nil {
		return err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return utils.NewFieldError("email", err.Error())
	}
	return c.data.AddStaff(ctx, email)
}

// RemoveStaff deletes a staff member
func (c *Console) RemoveStaff(ctx context.Context, staffID int64) error {
	if err := c.guard(ctx, permissions.ManageTeam, confirmRemoveStaff); err != nil {
		return err
	}
	if err := c.data.RemoveStaff(ctx, staffID); err != nil {
		return err
	}
	c.success("Staff member removed successfully")
	return nil
}

// DeactivateStaff disables a staff member's account
func (c *Console) DeactivateStaff(ctx context.Context, staffID int64) error {
	if err := c.guard(ctx, permissions.ManageTeam, confirmDeactivateStaff); err != nil {
		return err
	}
	if err := c.data.DeactivateStaff(ctx, staffID); err != nil {
		return err
	}
	c.success("Staff member deactivated successfully")
	return nil
}

// SupplierProfile shows the supplier account
func (c *Console) SupplierProfile(ctx context.Context) (*models.SupplierProfile, error) {
	if err := c.authorize(permissions.AccessSettings); err != nil {
		return nil, err
	}
	return c.data.SupplierProfile(ctx)
}

// UpdateSupplierProfile changes the supplier account
func (c *Console) UpdateSupplierProfile(ctx context.Context, update models.SupplierProfileUpdate) (*models.SupplierProfile, error) {
	if err := c.authorize(permissions.ManageSuppliers); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(update); err != nil {
		return nil, err
	}
	profile, err := c.data.UpdateSupplierProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	c.success("Supplier profile updated successfully")
	return profile, nil
}

// DeactivateSupplierAccount disables the supplier account
func (c *Console) DeactivateSupplierAccount(ctx context.Context) error {
	if err := c.guard(ctx, permissions.ManageSuppliers, confirmDeactivate); err != nil {
		return err
	}
	if err := c.data.DeactivateSupplierAccount(ctx); err != nil {
		return err
	}
	c.success("Supplier account deactivated")
	return nil
}

// DeleteSupplierAccount removes the supplier account
func (c *Console) DeleteSupplierAccount(ctx context.Context) error {
	if err := c.guard(ctx, permissions.ManageSuppliers, confirmDeleteAccount); err != nil {
		return err
	}
	if err := c.data.DeleteSupplierAccount(ctx); err != nil {
		return err
	}
	c.success("Supplier account deleted")
	return nil
}

// Profile shows the signed-in user's own profile
func (c *Console) Profile(ctx context.Context) (*models.UserResponse, error) {
	if c.session.User() == nil {
		return nil, services.ErrNotAuthenticated
	}
	return c.data.UserProfile(ctx)
}

// UpdateProfile changes the signed-in user's own profile
func (c *Console) UpdateProfile(ctx context.Context, update models.UserProfileUpdate) (*models.UserResponse, error) {
	if c.session.User() == nil {
		return nil, services.ErrNotAuthenticated
	}
	if err := utils.ValidateStruct(update); err != nil {
		return nil, err
	}
	user, err := c.data.UpdateUserProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	c.success("Profile updated successfully")
	return user, nil
}

// ChangePassword replaces the signed-in user's password
func (c *Console) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if c.session.User() == nil {
		return services.ErrNotAuthenticated
	}
	if err := utils.ValidateStruct(change); err != nil {
		return err
	}
	if err := c.data.ChangePassword(ctx, change); err != nil {
		return err
	}
	c.success("Password changed successfully")
	return nil
}
