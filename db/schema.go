package db

const postgresSchema = `
CREATE TABLE IF NOT EXISTS desserts (
    id TEXT PRIMARY KEY,
    dessert_name TEXT NOT NULL,
    description TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    image_url TEXT NOT NULL
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS desserts (
    id TEXT PRIMARY KEY,
    dessert_name TEXT NOT NULL,
    description TEXT NOT NULL,
    price REAL NOT NULL,
    image_url TEXT NOT NULL
);
`
