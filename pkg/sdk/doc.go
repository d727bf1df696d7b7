// Package restodex is an embedded Go client for the restodex restaurant
// catalog. It talks to MongoDB directly through the same repositories and use
// cases as the HTTP server, without going through the API.
//
//	client, err := restodex.New(ctx, restodex.WithMongo("mongodb://localhost:27017", "restodex"))
//	if err != nil { ... }
//	defer client.Close(ctx)
//
//	r, _ := client.Restaurants().Create(ctx, restodex.Restaurant{
//	    Name:    "Pizzaria Bella",
//	    Cuisine: "italian",
//	    Address: restodex.Address{Street: "Rua Augusta", Number: "1200",
//	        City: "Sao Paulo", State: "SP", PostalCode: "01304-001"},
//	})
//	_ = client.Restaurants().Rate(ctx, r.ID, restodex.Rating{Stars: 5})
//	top, _ := client.Restaurants().Top(ctx, restodex.RankLookup)
package restodex
