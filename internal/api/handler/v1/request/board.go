package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

var (
	errNotPositive = errors.New("must be greater than zero")
	errNegative    = errors.New("must not be negative")
)

type CreateBoardRequest struct {
	Name            string                 `json:"name" binding:"required"`
	PricePerSquare  decimal.Decimal        `json:"pricePerSquare" swaggertype:"string" example:"20.00"`
	PayoutStructure domain.PayoutStructure `json:"payoutStructure"`
}

func (req *CreateBoardRequest) Validate() error {
	p := &req.PayoutStructure

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 60)),
		validation.Field(&req.PricePerSquare, validation.By(positive)),
		validation.Field(&req.PayoutStructure, validation.By(func(interface{}) error {
			return validation.ValidateStruct(
				p,
				validation.Field(&p.RoundOne, validation.By(nonNegative)),
				validation.Field(&p.RoundTwo, validation.By(nonNegative)),
				validation.Field(&p.SweetSixteen, validation.By(nonNegative)),
				validation.Field(&p.EliteEight, validation.By(nonNegative)),
				validation.Field(&p.FinalFour, validation.By(nonNegative)),
				validation.Field(&p.Championship, validation.By(nonNegative)),
			)
		})),
	)
}

func positive(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if !d.IsPositive() {
		return errNotPositive
	}

	return nil
}

func nonNegative(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return errNegative
	}

	return nil
}

type ClaimSquaresRequest struct {
	Count int `json:"count" binding:"required"`
}

func (req *ClaimSquaresRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Required, validation.Min(1), validation.Max(domain.MaxSquaresPerOwner)),
	)
}
