//go:generate mockgen -source=../product_repository.go -destination=./mock_product_repository.go -package=mocks
//go:generate mockgen -source=../order_repository.go   -destination=./mock_order_repository.go   -package=mocks
//go:generate mockgen -source=../user_repository.go    -destination=./mock_user_repository.go    -package=mocks
//go:generate mockgen -source=../cache_backend.go      -destination=./mock_cache_backend.go      -package=mocks
//go:generate mockgen -source=../session_store.go      -destination=./mock_session_store.go      -package=mocks
//go:generate mockgen -source=../services.go           -destination=./mock_services.go           -package=mocks

package mocks
