package model

// Models lists every table for AutoMigrate. Postgres deployments use the
// goose migrations instead, which also carry the foreign keys.
func Models() []interface{} {
	return []interface{}{
		&ShopModel{},
		&TemplateModel{},
		&PostModel{},
		&MediaModel{},
	}
}
