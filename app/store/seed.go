package store

import (
	"time"

	"github.com/sedastudio/boutique/app/models"
)

// CatalogSeed returns the launch catalog. The storefront is Spanish-first,
// so all merchandising copy stays in Spanish.
func CatalogSeed() []models.Product {
	now := time.Now().UTC()

	return []models.Product{
		{
			ID:          "prd-drape-dress",
			SKU:         "CB-DR-001",
			Title:       "Vestido drapeado Azafrán",
			Summary:     "Silueta midi con escote halter y espalda descubierta para noches de verano.",
			Description: "Confeccionado en satén italiano certificado, combina un drapeado frontal que estiliza con espalda descubierta y falda evasé. El forro interior antiestático garantiza libertad de movimiento sin adherencias.",
			Price:       580,
			Currency:    "USD",
			Stock:       18,
			Tags:        []string{"halter", "evento nocturno", "premium fabrics"},
			HeroImage:   "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=900&q=70",
			Gallery: []string{
				"https://images.unsplash.com/photo-1503341455253-b2e723bb3dbb?auto=format&fit=crop&w=900&q=70",
				"https://images.unsplash.com/photo-1475180098004-ca77a66827be?auto=format&fit=crop&w=900&q=70",
			},
			Metadata:  models.ProductMetadata{Category: "Vestidos", ShippingEstimateDays: 5, Location: "Orilla Luminosa", Featured: true},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "prd-nocturne-blazer",
			SKU:         "CB-BL-208",
			Title:       "Blazer cruzado Nocturne",
			Summary:     "Lana fría con hombro estructurado y botones nácar ahumado.",
			Description: "Nuestra sastrería icónica se actualiza con un paño liviano de lana merino y viscosa reciclada. El frente cruzado limpia la silueta y el forro en cupro respirable permite llevarlo sobre tops de seda.",
			Price:       490,
			Currency:    "USD",
			Stock:       32,
			Tags:        []string{"sastrería", "lana fría", "oficina"},
			HeroImage:   "https://images.unsplash.com/photo-1507679799987-c73779587ccf?auto=format&fit=crop&w=900&q=70",
			Gallery: []string{
				"https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=900&q=70",
				"https://images.unsplash.com/photo-1485217988980-11786ced9454?auto=format&fit=crop&w=900&q=70",
			},
			Metadata:  models.ProductMetadata{Category: "Sastrería", ShippingEstimateDays: 7, Location: "Colección Nocturne", Featured: true},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "prd-luar-shirt",
			SKU:         "CB-SH-112",
			Title:       "Camisa de seda Luar",
			Summary:     "Botones ocultos y puño XL para styling continuo.",
			Description: "Camisa oversize construida en satén de seda 22 momme con caída líquida. Presenta cartera oculta, ruedo curvo y puños largos que pueden abrocharse doble para un look editorial.",
			Price:       320,
			Currency:    "USD",
			Stock:       41,
			Tags:        []string{"oversize", "sedas", "genderless"},
			HeroImage:   "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=900&q=70",
			Gallery: []string{
				"https://images.unsplash.com/photo-1521579971123-1192931a1452?auto=format&fit=crop&w=900&q=70",
				"https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=900&q=70",
			},
			Metadata:  models.ProductMetadata{Category: "Camisas", ShippingEstimateDays: 6, Location: "Luar Core", Featured: true},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "prd-arena-trench",
			SKU:         "CB-TR-411",
			Title:       "Trench minimal Arena",
			Summary:     "Gabardina repelente al agua con interior desmontable.",
			Description: "Versión ligera del trench clásico en algodón orgánico con membrana técnica que repele agua y viento. El chaleco interior acolchado se desmonta para adaptar la prenda entre estaciones.",
			Price:       720,
			Currency:    "USD",
			Stock:       15,
			Tags:        []string{"impermeable", "layering", "travel ready"},
			HeroImage:   "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?auto=format&fit=crop&w=900&q=70",
			Gallery: []string{
				"https://images.unsplash.com/photo-1490111718993-d98654ce6cf7?auto=format&fit=crop&w=900&q=70",
			},
			Metadata:  models.ProductMetadata{Category: "Outerwear", ShippingEstimateDays: 9, Location: "Arena Capsule", Featured: true},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "prd-bruma-knit",
			SKU:         "CB-KN-522",
			Title:       "Suéter cashmere Bruma",
			Summary:     "Cuello bote, hombro caído y punto perlado para máxima suavidad.",
			Description: "Hecho con cashmere grado A proveniente de la meseta de Alashan, certificado Good Cashmere Standard. El punto perlado crea textura tridimensional mientras que la tintura en prenda aporta matiz único.",
			Price:       410,
			Currency:    "USD",
			Stock:       38,
			Tags:        []string{"cashmere", "capsule wardrobe", "heirloom quality"},
			HeroImage:   "https://images.unsplash.com/photo-1469334031218-e382a71b716b?auto=format&fit=crop&w=900&q=70",
			Gallery: []string{
				"https://images.unsplash.com/photo-1503342217505-b0a15ec3261c?auto=format&fit=crop&w=900&q=70",
			},
			Metadata:  models.ProductMetadata{Category: "Knitwear", ShippingEstimateDays: 6, Location: "Bruma Knit Lab", Featured: true},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "prd-denim-weekend",
			SKU:         "CB-DN-305",
			Title:       "Denim relajado Weekend",
			Summary:     "Tiro alto y pierna recta en sarga italiana con lavado a la piedra.",
			Description: "Jeans confeccionados en algodón orgánico con un 2% de elastano reciclado para mantener estructura sin perder confort. El proceso de lavado utiliza ozono y reduce un 70% el consumo de agua.",
			Price:       260,
			Currency:    "USD",
			Stock:       52,
			Tags:        []string{"denim", "comfort stretch", "responsible wash"},
			HeroImage:   "https://images.unsplash.com/photo-1503342250614-ca4407868a5b?auto=format&fit=crop&w=900&q=70",
			Gallery: []string{
				"https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?auto=format&fit=crop&w=900&q=70",
			},
			Metadata:  models.ProductMetadata{Category: "Denim", ShippingEstimateDays: 4, Location: "Weekend Studio", Featured: false},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
