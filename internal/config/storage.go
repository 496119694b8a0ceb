package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	Driver    string // "local" or "s3"
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "auto"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		}
	})
	return storageConfig
}
