package config

func GetMongoURI() string {
	return GetEnvOrDefault("MONGO_URI", "")
}

func GetMongoDatabase() string {
	return GetEnvOrDefault("MONGO_DATABASE", "shepherd")
}
