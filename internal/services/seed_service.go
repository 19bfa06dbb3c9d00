package services

import "fmt"

// SeedService rebuilds the catalog from the bundled seed data.
type SeedService struct {
	catalog *CatalogService
}

// NewSeedService creates a new SeedService.
func NewSeedService(catalog *CatalogService) *SeedService {
	return &SeedService{
		catalog: catalog,
	}
}

// RunSeed wipes the catalog and inserts every seed product. Each product
// goes through CatalogService.Create, so the usual slug and uniqueness
// invariants apply to seeded rows as well.
func (s *SeedService) RunSeed() error {
	if err := s.catalog.DeleteAllProducts(); err != nil {
		return fmt.Errorf("failed to clear catalog before seeding: %w", err)
	}
	for _, input := range seedProducts {
		if _, err := s.catalog.Create(input); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", input.Title, err)
		}
	}
	s.catalog.publish("catalog.reseeded", "")
	return nil
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// seedProducts is the initial catalog inserted by RunSeed.
var seedProducts = []CreateProductInput{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Price:       floatPtr(75),
		Description: "Introducing the softest crew neck sweatshirt in the collection, with a relaxed fit and premium fleece interior.",
		Stock:       intPtr(7),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Price:       floatPtr(200),
		Description: "A warm quilted shirt jacket with a cropped silhouette and hidden snap placket.",
		Stock:       intPtr(5),
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      "men",
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
		Price:       floatPtr(130),
		Description: "A lightweight zip-up bomber with elastic hem and cuffs, built for daily wear.",
		Stock:       intPtr(10),
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Price:       floatPtr(225),
		Description: "A cropped puffer with a funnel neck and hidden zip pockets.",
		Stock:       intPtr(85),
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "women",
		Images:      []string{"1654238-00-A_0_2000.jpg", "1654238-00-A_1.jpg"},
	},
	{
		Title:       "Women's T Logo Short Sleeve Scoop Neck Tee",
		Price:       floatPtr(35),
		Description: "A slim-fit scoop neck tee in soft combed cotton.",
		Stock:       intPtr(0),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "women",
		Images:      []string{"1683302-00-A_0_2000.jpg", "1683302-00-A_1.jpg"},
	},
	{
		Title:       "Kids Cyberquad Bomber Jacket",
		Price:       floatPtr(65),
		Description: "A scaled-down bomber jacket with a graphic back print for young riders.",
		Stock:       intPtr(10),
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "kid",
		Images:      []string{"1742702-00-A_0_2000.jpg", "1742702-00-A_1.jpg"},
	},
	{
		Title:       "Cybertruck Graffiti Hoodie",
		Price:       floatPtr(60),
		Description: "A unisex pullover hoodie with a graffiti-style print across the chest.",
		Stock:       intPtr(13),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "unisex",
		Images:      []string{"7654420-00-A_0_2000.jpg", "7654420-00-A_1.jpg"},
	},
	{
		Title:       "Relaxed T Logo Hat",
		Price:       floatPtr(30),
		Description: "A classic unstructured six-panel hat with an adjustable strap.",
		Stock:       intPtr(11),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "unisex",
		Images:      []string{"1657932-00-A_0_2000.jpg", "1657932-00-A_1.jpg"},
	},
}
