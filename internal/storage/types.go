package storage

const sourceName = "postgres"
