package validators

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,dive,required,url"`
	Category    string   `json:"category" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
}
