package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/neonclouds/neonclouds-backend/pkg/enums"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func defaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Cyber Puff 9000",
			Price:       price("24.99"),
			Category:    enums.ProductCategoryDisposable,
			Description: "The ultimate disposable experience. Features a futuristic LED screen, dual mesh coils, and 9000 puffs of pure flavor intensity. USB-C rechargeable.",
			Image:       "https://images.unsplash.com/photo-1534119643501-9a706591244e?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1534119643501-9a706591244e?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1574169208507-84376144848b?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1519750783826-e2420f4d687f?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.9,
			Puffs:  intPtr(9000),
			Flavor: strPtr("Blue Razz Ice"),
		},
		{
			ID:          "2",
			Name:        "Neon Juice: Kryptonite",
			Price:       price("18.50"),
			Category:    enums.ProductCategoryELiquid,
			Description: "A glowing blend of melon, cucumber, and mint. A radioactive flavor explosion that keeps you refreshed all day.",
			Image:       "https://images.unsplash.com/photo-1563816669931-e14571997d97?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1563816669931-e14571997d97?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1618331835717-801e976710b2?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1595181519782-b7b25e755259?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.7,
			Flavor: strPtr("Melon Mint"),
		},
		{
			ID:          "3",
			Name:        "Void Mod X",
			Price:       price("89.99"),
			Category:    enums.ProductCategoryMods,
			Description: "High-power box mod reaching 220W. Transparent chassis with internal RGB lighting. Built for cloud chasers.",
			Image:       "https://images.unsplash.com/photo-1620188467120-5042ed1eb5da?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1620188467120-5042ed1eb5da?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1527661591475-527312dd65f5?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1496360875323-93d396996841?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.8,
		},
		{
			ID:          "4",
			Name:        "Stealth Pod Pro",
			Price:       price("34.99"),
			Category:    enums.ProductCategoryPods,
			Description: "Ultra-slim, discreet, and powerful. The perfect pocket companion with leak-proof technology.",
			Image:       "https://images.unsplash.com/photo-1619451427882-6a36a9996c38?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1619451427882-6a36a9996c38?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1512054236021-9e735497b762?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.5,
		},
		{
			ID:          "5",
			Name:        "Glitch Bar 5000",
			Price:       price("19.99"),
			Category:    enums.ProductCategoryDisposable,
			Description: "Experience the glitch. Intense strawberry kiwi flavor with a unique geometric design grip.",
			Image:       "https://images.unsplash.com/photo-1600088927806-03f3c3609805?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1600088927806-03f3c3609805?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1528643536868-692d098e79e6?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.6,
			Puffs:  intPtr(5000),
			Flavor: strPtr("Strawberry Kiwi"),
		},
		{
			ID:          "6",
			Name:        "Quantum Salt: Berry",
			Price:       price("15.99"),
			Category:    enums.ProductCategoryELiquid,
			Description: "Nicotine salts optimized for pod systems. A complex mix of dark berries and anise.",
			Image:       "https://images.unsplash.com/photo-1557870183-b7156942c0f2?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1557870183-b7156942c0f2?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1506337195308-795914a10052?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.4,
			Flavor: strPtr("Mixed Berry"),
		},
		{
			ID:          "7",
			Name:        "Titan Tank V2",
			Price:       price("39.99"),
			Category:    enums.ProductCategoryMods,
			Description: "Massive capacity sub-ohm tank. Top airflow design prevents leaks while delivering maximum flavor.",
			Image:       "https://images.unsplash.com/photo-1527661591475-527312dd65f5?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1527661591475-527312dd65f5?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1559302504-64aae6ca6b6f?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.7,
		},
		{
			ID:          "8",
			Name:        "Nebula Disposable",
			Price:       price("22.00"),
			Category:    enums.ProductCategoryDisposable,
			Description: "Intergalactic mango peach flavor. Smooth draw and consistent output until the very last puff.",
			Image:       "https://images.unsplash.com/photo-1518640467707-6811f4a6ab73?auto=format&fit=crop&q=80&w=800",
			Gallery: []string{
				"https://images.unsplash.com/photo-1518640467707-6811f4a6ab73?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?auto=format&fit=crop&q=80&w=800",
			},
			Rating: 4.8,
			Puffs:  intPtr(7500),
			Flavor: strPtr("Mango Peach"),
		},
	}
}
