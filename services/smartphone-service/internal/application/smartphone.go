package application

import (
	"context"

	"smartphones/services/smartphone-service/internal/domain"

	"github.com/google/uuid"
)

type SmartphoneRepository interface {
	List(ctx context.Context) ([]domain.Smartphone, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Smartphone, error)
	Create(ctx context.Context, p *domain.Smartphone) error
	Update(ctx context.Context, p *domain.Smartphone) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type DeleteCodeVerifier interface {
	Verify(code string) bool
}

type SmartphoneUseCase struct {
	repo     SmartphoneRepository
	verifier DeleteCodeVerifier
}

func NewSmartphoneUseCase(repo SmartphoneRepository, verifier DeleteCodeVerifier) *SmartphoneUseCase {
	return &SmartphoneUseCase{repo: repo, verifier: verifier}
}

func (uc *SmartphoneUseCase) List(ctx context.Context) ([]domain.Smartphone, error) {
	phones, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if phones == nil {
		phones = []domain.Smartphone{}
	}
	return phones, nil
}

func (uc *SmartphoneUseCase) Get(ctx context.Context, id string) (*domain.Smartphone, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, uid)
}

// Create stores the payload as-is apart from the server-owned keys.
func (uc *SmartphoneUseCase) Create(ctx context.Context, payload map[string]interface{}) (*domain.Smartphone, error) {
	phone, err := domain.FromPayload(payload)
	if err != nil {
		return nil, err
	}
	phone.ID = uuid.New()

	if err := uc.repo.Create(ctx, phone); err != nil {
		return nil, err
	}
	return phone, nil
}

// Update is a full replacement of the descriptive fields.
func (uc *SmartphoneUseCase) Update(ctx context.Context, id string, payload map[string]interface{}) (*domain.Smartphone, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	phone, err := domain.FromPayload(payload)
	if err != nil {
		return nil, err
	}
	phone.ID = uid

	if err := uc.repo.Update(ctx, phone); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, uid)
}

// Delete checks the code before the store is touched.
func (uc *SmartphoneUseCase) Delete(ctx context.Context, id, code string) error {
	if !uc.verifier.Verify(code) {
		return domain.ErrInvalidDeleteCode
	}
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, uid)
}

// Seed inserts the given payloads when the store is empty. Returns how many were added.
func (uc *SmartphoneUseCase) Seed(ctx context.Context, payloads []map[string]interface{}) (int, error) {
	count, err := uc.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i, p := range payloads {
		if _, err := uc.Create(ctx, p); err != nil {
			return i, err
		}
	}
	return len(payloads), nil
}

// A malformed id cannot match any record.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrSmartphoneNotFound
	}
	return uid, nil
}
