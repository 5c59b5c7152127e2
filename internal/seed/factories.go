// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"estately/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DemoPassword is the password shared by every seeded account.
const DemoPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	// cached hash of DemoPassword
	passwordHash string
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
// A zero opts.RandSeed picks a random seed.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{db: db, opts: opts, faker: gofakeit.New(opts.RandSeed), nextID: 1000}
}

func (f *Factory) hashedPassword() (string, error) {
	if f.passwordHash != "" {
		return f.passwordHash, nil
	}
	cost := f.opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return "", err
	}
	f.passwordHash = string(hash)
	return f.passwordHash, nil
}

// EnsureUser returns the account with email, creating it with role when missing.
// Existing accounts are left untouched.
func (f *Factory) EnsureUser(name, email string, role models.Role) (*models.User, error) {
	hash, err := f.hashedPassword()
	if err != nil {
		return nil, err
	}
	attrs := models.User{Name: name, Password: hash, Role: role}
	if f.opts.DryRun {
		f.nextID++
		attrs.ID = f.nextID
		attrs.Email = email
		return &attrs, nil
	}

	var user models.User
	if err := f.db.Where(models.User{Email: email}).Attrs(attrs).FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser constructs and persists a random account with role.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.hashedPassword()
	if err != nil {
		return nil, err
	}
	name := f.faker.Name()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s.%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), f.faker.Number(100, 99999)),
		Password: hash,
		Role:     role,
	}
	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Name, user.Email)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildProperty constructs a realistic listing for owner without persisting it.
func (f *Factory) BuildProperty(owner *models.User, overrides ...func(*models.Property)) *models.Property {
	city := Cities[f.faker.Number(0, len(Cities)-1)]
	locality := f.faker.RandomString(city.Localities)
	kind := f.faker.RandomString(propertyTypes)

	bedrooms := f.faker.Number(1, 4)
	if kind == "STUDIO" {
		bedrooms = 1
	}
	bathrooms := max(1, bedrooms-f.faker.Number(0, 1))

	var area int
	switch kind {
	case "VILLA":
		area = bedrooms*600 + f.faker.Number(0, 799)
	case "PENTHOUSE":
		area = bedrooms*500 + f.faker.Number(0, 699)
	default:
		area = bedrooms*350 + f.faker.Number(0, 399)
	}

	price := float64(int(float64(bedrooms*10000)*city.PriceMultiplier) + f.faker.Number(0, 14999))

	listingType := models.ListingTypeRent
	if f.faker.Bool() {
		listingType = models.ListingTypeSell
	}
	furnished := f.faker.Number(1, 10) > 4

	status := models.PropertyStatusApproved
	if f.faker.Number(1, 10) == 1 {
		status = models.PropertyStatusPending
	}

	label := strings.ToLower(strings.ReplaceAll(kind, "_", " "))
	title := fmt.Sprintf("%d BHK %s in %s", bedrooms, titleCase(label), locality)

	p := &models.Property{
		Title:       title,
		Slug:        slug.Make(title + " " + city.Name),
		Description: describe(bedrooms, bathrooms, area, label, locality, city.Name, furnished, f.pickN(amenities, 2, 4)),
		Price:       price,
		City:        city.Name,
		Address:     fmt.Sprintf("%d, %s, %s", f.faker.Number(1, 500), locality, city.Name),
		Area:        float64(area),
		Bedrooms:    bedrooms,
		Bathrooms:   bathrooms,
		Furnished:   furnished,
		Type:        kind,
		ListingType: listingType,
		Images:      datatypes.JSONSlice[string](f.pickN(listingImages, 1, 3)),
		Status:      status,
		OwnerID:     owner.ID,
		CreatedAt:   f.createdAt(),
	}

	for _, override := range overrides {
		override(p)
	}
	return p
}

// CreatePropertiesBatch persists listings in chunks of BatchSize.
func (f *Factory) CreatePropertiesBatch(props []*models.Property) error {
	if f.opts.DryRun {
		for _, p := range props {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePropertiesBatch: %d listings (no DB write)", len(props))
		return nil
	}
	size := f.opts.BatchSize
	if size <= 0 {
		size = 100
	}
	return f.db.CreateInBatches(props, size).Error
}

// pickN returns between lo and hi distinct entries of from.
func (f *Factory) pickN(from []string, lo, hi int) []string {
	n := min(f.faker.Number(lo, hi), len(from))
	shuffled := append([]string(nil), from...)
	f.faker.ShuffleStrings(shuffled)
	return shuffled[:n]
}

// createdAt spreads listings over the last MaxDays days.
func (f *Factory) createdAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60-1)) * time.Minute
	return time.Now().Add(-back)
}

func describe(bedrooms, bathrooms, area int, label, locality, city string, furnished bool, features []string) string {
	furnishing := "unfurnished"
	if furnished {
		furnishing = "fully furnished"
	}
	return fmt.Sprintf(
		"Beautiful %d BHK %s in %s, %s. This %s property offers %d sq.ft of living space with %s and %s. "+
			"Amenities include: %s. Located in a prime area with easy access to metro, schools, hospitals and shopping centers.",
		bedrooms, label, locality, city, furnishing, area,
		plural(bedrooms, "bedroom"), plural(bathrooms, "bathroom"),
		strings.Join(features, ", "),
	)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
