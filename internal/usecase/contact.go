package usecase

import "github.com/totegamma/agenda/internal/domain"

func NewContactUsecase(repo Repository[domain.Contact], validator *Validator, publisher ChangePublisher) *CrudUsecase[domain.Contact] {
	return NewCrudUsecase("contact", repo, validator, publisher)
}
