package contextkeys

// Custom type avoids context key collisions.
type contextKey string

// DBContextKey holds the *gorm.DB (pool or transaction) in a request context.
const DBContextKey = contextKey("db")
