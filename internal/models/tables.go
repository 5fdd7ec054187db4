package models

import "gorm.io/gorm/schema"

// prefixed applies the configured database.table_prefix to a fixed table name.
func prefixed(namer schema.Namer, table string) string {
	switch ns := namer.(type) {
	case schema.NamingStrategy:
		return ns.TablePrefix + table
	case *schema.NamingStrategy:
		return ns.TablePrefix + table
	}
	return table
}
