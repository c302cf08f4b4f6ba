package splash

import (
	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/services/variants"
	"woosync/internal/store"
)

// ThirdPartyObject maps the protocol's ThirdParty (customer) onto store
// users, billing address included.
type ThirdPartyObject struct {
	store store.Store
	log   *logger.Logger
}

func NewThirdPartyObject(st store.Store, log *logger.Logger) *ThirdPartyObject {
	return &ThirdPartyObject{store: st, log: log}
}

func (o *ThirdPartyObject) Type() string { return "ThirdParty" }

func (o *ThirdPartyObject) Fields() []Field {
	return []Field{
		{ID: "email", Type: TypeEmail, Name: "Email", Required: true},
		{ID: "first_name", Type: TypeVarchar, Name: "First Name"},
		{ID: "last_name", Type: TypeVarchar, Name: "Last Name"},
		{ID: "company", Type: TypeVarchar, Name: "Company"},
		{ID: "address_1", Type: TypeVarchar, Name: "Address"},
		{ID: "address_2", Type: TypeVarchar, Name: "Address (2)"},
		{ID: "city", Type: TypeVarchar, Name: "City"},
		{ID: "postcode", Type: TypeVarchar, Name: "Postcode"},
		{ID: "country", Type: TypeVarchar, Name: "Country"},
		{ID: "phone", Type: TypeVarchar, Name: "Phone"},
	}
}

func (o *ThirdPartyObject) List(offset, limit int) ([]map[string]interface{}, int64, error) {
	users, total, err := o.store.Users(offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		out = append(out, o.row(&users[i]))
	}
	return out, total, nil
}

func (o *ThirdPartyObject) Get(id string) (map[string]interface{}, error) {
	u, err := o.store.UserByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, variants.ErrNotFound
	}
	return o.row(u), nil
}

func (o *ThirdPartyObject) Set(id string, data map[string]interface{}) (string, error) {
	var u *models.User
	if id == "" {
		u = &models.User{}
	} else {
		existing, err := o.store.UserByID(id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", variants.ErrNotFound
		}
		u = existing
	}

	if v := asString(data["email"]); v != "" {
		u.Email = v
	}
	if v := asString(data["first_name"]); v != "" {
		u.FirstName = v
	}
	if v := asString(data["last_name"]); v != "" {
		u.LastName = v
	}
	setOptional(&u.Company, data["company"])
	setOptional(&u.Address1, data["address_1"])
	setOptional(&u.Address2, data["address_2"])
	setOptional(&u.City, data["city"])
	setOptional(&u.Postcode, data["postcode"])
	setOptional(&u.Country, data["country"])
	setOptional(&u.Phone, data["phone"])

	if id == "" {
		if err := o.store.CreateUser(u); err != nil {
			return "", err
		}
		return u.ID, nil
	}
	if err := o.store.UpdateUser(u); err != nil {
		return "", err
	}
	return u.ID, nil
}

func (o *ThirdPartyObject) Delete(id string) error {
	return o.store.DeleteUser(id)
}

func (o *ThirdPartyObject) row(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"company":    deref(u.Company),
		"address_1":  deref(u.Address1),
		"address_2":  deref(u.Address2),
		"city":       deref(u.City),
		"postcode":   deref(u.Postcode),
		"country":    deref(u.Country),
		"phone":      deref(u.Phone),
	}
}

func setOptional(dst **string, v interface{}) {
	if s := asString(v); s != "" {
		*dst = &s
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
