package seed

// businessSeed is one local business listing in the demo dataset.
type businessSeed struct {
	Name        string
	Category    string
	Description string
	Lat         float64
	Lng         float64
	Address     string
	Rating      float64
}

// postSeed is one explore feed entry in the demo dataset.
type postSeed struct {
	Title    string
	Body     string
	Category string
}

// vendorSeed is one hub vendor in the demo dataset, with its catalog.
type vendorSeed struct {
	Name           string
	Category       string
	Description    string
	ImageURL       string
	Phone          string
	Lat            float64
	Lng            float64
	Address        string
	Rating         float64
	RatingCount    int
	HasOwnDelivery bool
	OpeningHours   string
	Products       []productSeed
}

// productSeed is one catalog entry in the demo dataset. Prices are whole
// rupees; a zero DiscountedPrice means the product sells at list price.
type productSeed struct {
	Name            string
	Description     string
	Category        string
	Price           int64
	DiscountedPrice int64
	ImageURLs       []string
	LikeCount       int
}

func demoBusinesses() []businessSeed {
	return []businessSeed{
		{
			Name:        "Fresh Fruits by Lakshmi",
			Category:    "Fruits & Vegetables",
			Description: "Fresh seasonal fruits delivered to your doorstep",
			Lat:         12.9716,
			Lng:         77.5946,
			Address:     "Sector 3, Local Market",
			Rating:      4.8,
		},
		{
			Name:        "Amma's Kitchen",
			Category:    "Home Kitchen",
			Description: "Authentic home-cooked meals with love",
			Lat:         12.9720,
			Lng:         77.5950,
			Address:     "Block B, Apartment 204",
			Rating:      4.9,
		},
		{
			Name:        "Ravi's Handicrafts",
			Category:    "Artisan",
			Description: "Handmade traditional crafts and decorations",
			Lat:         12.9710,
			Lng:         77.5940,
			Address:     "Craft Lane, Shop 12",
			Rating:      4.7,
		},
		{
			Name:        "Quick Pharmacy",
			Category:    "Pharmacy",
			Description: "24/7 medicine delivery in your area",
			Lat:         12.9725,
			Lng:         77.5955,
			Address:     "Main Road, Near Bus Stop",
			Rating:      4.6,
		},
		{
			Name:        "Green Grocery",
			Category:    "Grocery",
			Description: "Daily essentials and grocery items",
			Lat:         12.9718,
			Lng:         77.5948,
			Address:     "Sector 2, Shop 5",
			Rating:      4.5,
		},
	}
}

func demoPosts() []postSeed {
	return []postSeed{
		{
			Title:    "Local Hero: Ramesh completes 1000th delivery! 🎉",
			Body:     "Ramesh Kumar, a fulfillment agent from Sector 5, has completed his 1000th delivery task. Community members praised his dedication and reliability.",
			Category: "milestone",
		},
		{
			Title:    "Weekend Community Market",
			Body:     "Join us this Saturday at Central Park for our monthly community market. Fresh produce, handicrafts, and local delicacies!",
			Category: "event",
		},
		{
			Title:    "New Feature: Schedule Your Wishes!",
			Body:     "You can now schedule your wishes for a later time. Perfect for planning ahead!",
			Category: "news",
		},
	}
}

func demoVendors() []vendorSeed {
	return []vendorSeed{
		{
			Name:           "Fresh Mart Grocery",
			Category:       "Grocery",
			Description:    "Your one-stop shop for fresh groceries, dairy, and household essentials. Quality products at affordable prices.",
			ImageURL:       "https://images.unsplash.com/photo-1604719312566-8912e9227c6a?w=400",
			Phone:          "+91 98765 43210",
			Lat:            12.9716,
			Lng:            77.5946,
			Address:        "Shop 12, Central Market, Sector 5",
			Rating:         4.8,
			RatingCount:    1247,
			HasOwnDelivery: true,
			OpeningHours:   "7:00 AM - 10:00 PM",
			Products: []productSeed{
				{
					Name:            "Basmati Rice Premium (5kg)",
					Description:     "Long grain aromatic basmati rice, perfect for biryani and pulao",
					Category:        "Rice & Grains",
					Price:           450,
					DiscountedPrice: 399,
					ImageURLs: []string{
						"https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400",
						"https://images.unsplash.com/photo-1536304993881-ff6e9eefa2a6?w=400",
					},
					LikeCount: 234,
				},
				{
					Name:            "Toor Dal (1kg)",
					Description:     "Pure and clean toor dal, rich in protein",
					Category:        "Pulses",
					Price:           180,
					DiscountedPrice: 165,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1585032226651-759b368d7246?w=400"},
					LikeCount:       156,
				},
				{
					Name:        "Fresh Milk (1L)",
					Description: "Farm fresh pasteurized milk",
					Category:    "Dairy",
					Price:       65,
					ImageURLs:   []string{"https://images.unsplash.com/photo-1550583724-b2692b85b150?w=400"},
					LikeCount:   89,
				},
				{
					Name:            "Organic Honey (500g)",
					Description:     "100% pure organic honey from forest bees",
					Category:        "Organic",
					Price:           450,
					DiscountedPrice: 399,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=400"},
					LikeCount:       445,
				},
			},
		},
		{
			Name:           "Hyderabadi Biryani House",
			Category:       "Restaurant",
			Description:    "Authentic Hyderabadi dum biryani made with aromatic basmati rice and tender meat. Family recipes since 1985.",
			ImageURL:       "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=400",
			Phone:          "+91 98765 43211",
			Lat:            12.9720,
			Lng:            77.5950,
			Address:        "15, Food Street, Block B",
			Rating:         4.9,
			RatingCount:    2341,
			HasOwnDelivery: true,
			OpeningHours:   "11:00 AM - 11:00 PM",
			Products: []productSeed{
				{
					Name:        "Chicken Dum Biryani (Full)",
					Description: "Authentic Hyderabadi chicken biryani with raita and salan",
					Category:    "Biryani",
					Price:       450,
					ImageURLs: []string{
						"https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=400",
						"https://images.unsplash.com/photo-1589302168068-964664d93dc0?w=400",
					},
					LikeCount: 1234,
				},
				{
					Name:        "Mutton Dum Biryani (Full)",
					Description: "Tender mutton pieces in aromatic rice",
					Category:    "Biryani",
					Price:       550,
					ImageURLs:   []string{"https://images.unsplash.com/photo-1633945274405-b6c8069047b0?w=400"},
					LikeCount:   987,
				},
				{
					Name:            "Veg Biryani (Full)",
					Description:     "Flavorful vegetable biryani with fresh veggies",
					Category:        "Biryani",
					Price:           280,
					DiscountedPrice: 250,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1599043513900-ed6fe01d3833?w=400"},
					LikeCount:       567,
				},
				{
					Name:        "Chicken 65",
					Description: "Crispy spiced chicken starter",
					Category:    "Starters",
					Price:       250,
					ImageURLs:   []string{"https://images.unsplash.com/photo-1610057099443-fde8c4d50f91?w=400"},
					LikeCount:   789,
				},
			},
		},
		{
			Name:         "MedPlus Pharmacy",
			Category:     "Pharmacy",
			Description:  "Certified pharmacy with 24/7 service. Prescription medicines, healthcare products, and free health checkups.",
			ImageURL:     "https://images.unsplash.com/photo-1576602976047-174e57a47881?w=400",
			Phone:        "+91 98765 43212",
			Lat:          12.9718,
			Lng:          77.5948,
			Address:      "Ground Floor, Healthcare Complex",
			Rating:       4.7,
			RatingCount:  892,
			OpeningHours: "24 Hours",
			Products: []productSeed{
				{
					Name:        "Crocin Advance 500mg (15 tabs)",
					Description: "Fast relief from headache and fever",
					Category:    "Pain Relief",
					Price:       45,
					ImageURLs:   []string{"https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=400"},
					LikeCount:   234,
				},
				{
					Name:            "Vitamin C 1000mg (30 tabs)",
					Description:     "Boost immunity with high-strength Vitamin C",
					Category:        "Vitamins",
					Price:           350,
					DiscountedPrice: 299,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1550572017-edd951aa8f72?w=400"},
					LikeCount:       456,
				},
				{
					Name:            "Digital Thermometer",
					Description:     "Accurate digital thermometer with memory function",
					Category:        "Medical Devices",
					Price:           299,
					DiscountedPrice: 249,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1584362917165-526a968ae5c6?w=400"},
					LikeCount:       123,
				},
			},
		},
		{
			Name:         "Tech Zone Electronics",
			Category:     "Electronics",
			Description:  "Latest gadgets, mobile accessories, and electronics. Authorized service center for major brands.",
			ImageURL:     "https://images.unsplash.com/photo-1518770660439-4636190af475?w=400",
			Phone:        "+91 98765 43213",
			Lat:          12.9725,
			Lng:          77.5955,
			Address:      "Shop 45, Tech Mall, Level 2",
			Rating:       4.5,
			RatingCount:  567,
			OpeningHours: "10:00 AM - 9:00 PM",
			Products: []productSeed{
				{
					Name:            "Wireless Earbuds Pro",
					Description:     "Premium wireless earbuds with active noise cancellation",
					Category:        "Audio",
					Price:           2999,
					DiscountedPrice: 2499,
					ImageURLs: []string{
						"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=400",
						"https://images.unsplash.com/photo-1606220588913-b3aacb4d2f46?w=400",
					},
					LikeCount: 678,
				},
				{
					Name:            "USB-C Fast Charger 65W",
					Description:     "Universal fast charger for laptops and phones",
					Category:        "Chargers",
					Price:           1299,
					DiscountedPrice: 999,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1583863788434-e58a36330cf0?w=400"},
					LikeCount:       345,
				},
				{
					Name:            "Smartphone Gimbal Stabilizer",
					Description:     "3-axis gimbal for smooth video recording",
					Category:        "Accessories",
					Price:           4999,
					DiscountedPrice: 3999,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1598346762291-aee88549193f?w=400"},
					LikeCount:       234,
				},
			},
		},
		{
			Name:         "Fashion Hub",
			Category:     "Fashion",
			Description:  "Trendy clothing and accessories for men, women, and kids. Latest fashion at unbeatable prices.",
			ImageURL:     "https://images.unsplash.com/photo-1441984904996-e0b6ba687e04?w=400",
			Phone:        "+91 98765 43214",
			Lat:          12.9712,
			Lng:          77.5942,
			Address:      "Fashion Street, Shop 8-10",
			Rating:       4.4,
			RatingCount:  423,
			OpeningHours: "10:00 AM - 9:00 PM",
			Products: []productSeed{
				{
					Name:            "Men's Cotton Casual Shirt",
					Description:     "Breathable cotton shirt, perfect for everyday wear",
					Category:        "Men's Wear",
					Price:           899,
					DiscountedPrice: 699,
					ImageURLs: []string{
						"https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=400",
						"https://images.unsplash.com/photo-1598033129183-c4f50c736f10?w=400",
					},
					LikeCount: 345,
				},
				{
					Name:            "Women's Kurti Set",
					Description:     "Elegant cotton kurti with matching dupatta",
					Category:        "Women's Wear",
					Price:           1299,
					DiscountedPrice: 999,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1594938298603-c8148c4dae35?w=400"},
					LikeCount:       567,
				},
				{
					Name:            "Kids Party Dress",
					Description:     "Beautiful party dress for girls, age 5-8 years",
					Category:        "Kids Wear",
					Price:           799,
					DiscountedPrice: 599,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1518831959646-742c3a14ebf7?w=400"},
					LikeCount:       234,
				},
			},
		},
		{
			Name:           "Green Garden Nursery",
			Category:       "Garden & Plants",
			Description:    "Beautiful plants, seeds, gardening tools, and expert advice. Transform your space with greenery!",
			ImageURL:       "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400",
			Phone:          "+91 98765 43215",
			Lat:            12.9730,
			Lng:            77.5960,
			Address:        "Green Zone, Sector 7",
			Rating:         4.8,
			RatingCount:    234,
			HasOwnDelivery: true,
			OpeningHours:   "8:00 AM - 7:00 PM",
			Products: []productSeed{
				{
					Name:            "Money Plant (Potted)",
					Description:     "Lucky money plant in decorative ceramic pot",
					Category:        "Indoor Plants",
					Price:           299,
					DiscountedPrice: 249,
					ImageURLs: []string{
						"https://images.unsplash.com/photo-1459411552884-841db9b3cc2a?w=400",
						"https://images.unsplash.com/photo-1463936575829-25148e1db1b8?w=400",
					},
					LikeCount: 456,
				},
				{
					Name:        "Rose Plant (Red)",
					Description: "Beautiful red rose plant, blooming variety",
					Category:    "Flowering Plants",
					Price:       199,
					ImageURLs:   []string{"https://images.unsplash.com/photo-1455659817273-f96807779a8a?w=400"},
					LikeCount:   678,
				},
				{
					Name:            "Gardening Tool Set",
					Description:     "Complete 5-piece gardening tool set",
					Category:        "Tools",
					Price:           599,
					DiscountedPrice: 499,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400"},
					LikeCount:       234,
				},
			},
		},
		{
			Name:           "Sweet Treats Bakery",
			Category:       "Bakery",
			Description:    "Freshly baked cakes, pastries, cookies, and artisan breads. Custom cakes for all occasions!",
			ImageURL:       "https://images.unsplash.com/photo-1517433670267-30f41c09a4be?w=400",
			Phone:          "+91 98765 43216",
			Lat:            12.9708,
			Lng:            77.5938,
			Address:        "Sweet Corner, Main Road",
			Rating:         4.9,
			RatingCount:    1876,
			HasOwnDelivery: true,
			OpeningHours:   "8:00 AM - 10:00 PM",
			Products: []productSeed{
				{
					Name:        "Chocolate Truffle Cake (1kg)",
					Description: "Rich chocolate truffle cake with ganache frosting",
					Category:    "Cakes",
					Price:       899,
					ImageURLs: []string{
						"https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400",
						"https://images.unsplash.com/photo-1606890737304-57a1ca8a5b62?w=400",
					},
					LikeCount: 1234,
				},
				{
					Name:            "Assorted Cookies Box (500g)",
					Description:     "Mix of chocolate chip, butter, and oatmeal cookies",
					Category:        "Cookies",
					Price:           399,
					DiscountedPrice: 349,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=400"},
					LikeCount:       567,
				},
				{
					Name:        "Fresh Croissants (4 pcs)",
					Description: "Buttery French croissants, baked fresh daily",
					Category:    "Bakery",
					Price:       180,
					ImageURLs:   []string{"https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400"},
					LikeCount:   345,
				},
				{
					Name:            "Red Velvet Cupcakes (6 pcs)",
					Description:     "Classic red velvet cupcakes with cream cheese frosting",
					Category:        "Cupcakes",
					Price:           350,
					DiscountedPrice: 299,
					ImageURLs:       []string{"https://images.unsplash.com/photo-1614707267537-b85aaf00c4b7?w=400"},
					LikeCount:       789,
				},
			},
		},
	}
}
