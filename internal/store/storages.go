package store

type Storages struct {
	UserRepository   UserRepository
	SyncRepository   SyncRepository
	PhotoFileStorage PhotoFileStorage
}
