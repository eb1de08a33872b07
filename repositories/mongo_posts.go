package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"simply-blog/models"
)

var _ PostStore = (*MongoPostRepository)(nil)

// MongoPostRepository is the durable backend, persisting posts in the
// "posts" collection. Identifiers are store-generated ObjectIDs exposed
// to callers as hex strings.
type MongoPostRepository struct {
	col *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{col: db.Collection("posts")}
}

// postDoc is the persisted shape. It exists so the canonical models.Post
// can stay backend-agnostic: _id and the bson field names live here only.
type postDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Subtitle      string             `bson:"subtitle,omitempty"`
	Content       string             `bson:"content"`
	Author        string             `bson:"author"`
	Category      string             `bson:"category"`
	Tags          []string           `bson:"tags"`
	Status        models.Status      `bson:"status"`
	FeaturedImage string             `bson:"featured_image"`
	Slug          string             `bson:"slug"`
	SEO           models.SEO         `bson:"seo"`
	Visibility    models.Visibility  `bson:"visibility"`
	Views         int64              `bson:"views"`
	Likes         int64              `bson:"likes"`
	PublishDate   time.Time          `bson:"publish_date"`
	ScheduledDate *time.Time         `bson:"scheduled_date,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func newPostDoc(p models.Post) postDoc {
	return postDoc{
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Content:       p.Content,
		Author:        p.Author,
		Category:      p.Category,
		Tags:          p.Tags,
		Status:        p.Status,
		FeaturedImage: p.FeaturedImage,
		Slug:          p.Slug,
		SEO:           p.SEO,
		Visibility:    p.Visibility,
		Views:         p.Views,
		Likes:         p.Likes,
		PublishDate:   p.PublishDate,
		ScheduledDate: p.ScheduledDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d postDoc) toModel() models.Post {
	return models.Post{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Subtitle:      d.Subtitle,
		Content:       d.Content,
		Author:        d.Author,
		Category:      d.Category,
		Tags:          d.Tags,
		Status:        d.Status,
		FeaturedImage: d.FeaturedImage,
		Slug:          d.Slug,
		SEO:           d.SEO,
		Visibility:    d.Visibility,
		Views:         d.Views,
		Likes:         d.Likes,
		PublishDate:   d.PublishDate,
		ScheduledDate: d.ScheduledDate,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// parseObjectID validates the identifier shape for this backend.
// A non-hex identifier is a validation error, never a not-found.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not an object id", ErrInvalidID, id)
	}
	return oid, nil
}

// mapMongoErr translates driver errors into the store's sentinel kinds.
// Connection-level failures become ErrUnavailable so the caller fails the
// one operation without taking the process down.
func mapMongoErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (r *MongoPostRepository) Kind() string { return "mongodb" }

func (r *MongoPostRepository) Insert(ctx context.Context, post *models.Post) (*models.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	doc := newPostDoc(*post)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	out := doc.toModel()
	return &out, nil
}

func buildListFilter(opts ListOptions) bson.M {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Featured != nil {
		filter["visibility.featured"] = *opts.Featured
	}
	return filter
}

func (r *MongoPostRepository) List(ctx context.Context, opts ListOptions) ([]models.Post, int64, error) {
	filter := buildListFilter(opts)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 1
	}
	skip := int64((opts.Page - 1) * opts.Limit)
	limit := int64(opts.Limit)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapMongoErr(err)
	}

	findOpts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{
		{Key: "publish_date", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, mapMongoErr(err)
	}
	defer cur.Close(ctx)

	var results []models.Post
	for cur.Next(ctx) {
		var d postDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, err
		}
		results = append(results, d.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, mapMongoErr(err)
	}
	return results, total, nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var d postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mapMongoErr(err)
	}
	out := d.toModel()
	return &out, nil
}

func (r *MongoPostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var d postDoc
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&d); err != nil {
		return nil, mapMongoErr(err)
	}
	out := d.toModel()
	return &out, nil
}

// patchToSet builds the $set document for a partial update. SEO and
// visibility fields use dotted keys so an update touches only the
// sub-fields actually present in the patch.
func patchToSet(patch models.PostPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Subtitle != nil {
		set["subtitle"] = *patch.Subtitle
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.FeaturedImage != nil {
		set["featured_image"] = *patch.FeaturedImage
	}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}
	if patch.PublishDate != nil {
		set["publish_date"] = *patch.PublishDate
	}
	if patch.ScheduledDate != nil {
		set["scheduled_date"] = *patch.ScheduledDate
	}
	if patch.MetaTitle != nil {
		set["seo.meta_title"] = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		set["seo.meta_description"] = *patch.MetaDescription
	}
	if patch.ShowOnHomepage != nil {
		set["visibility.show_on_homepage"] = *patch.ShowOnHomepage
	}
	if patch.AllowComments != nil {
		set["visibility.allow_comments"] = *patch.AllowComments
	}
	if patch.Featured != nil {
		set["visibility.featured"] = *patch.Featured
	}
	return set
}

func (r *MongoPostRepository) UpdateByID(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := patchToSet(patch, time.Now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d postDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d); err != nil {
		return nil, mapMongoErr(err)
	}
	out := d.toModel()
	return &out, nil
}

func (r *MongoPostRepository) DeleteByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var d postDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mapMongoErr(err)
	}
	out := d.toModel()
	return &out, nil
}

func (r *MongoPostRepository) IncrementCounter(ctx context.Context, id string, field string) (int64, error) {
	if field != models.CounterViews && field != models.CounterLikes {
		return 0, fmt.Errorf("unknown counter field %q", field)
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	var d postDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&d); err != nil {
		return 0, mapMongoErr(err)
	}
	if field == models.CounterLikes {
		return d.Likes, nil
	}
	return d.Views, nil
}

func (r *MongoPostRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, mapMongoErr(err)
	}
	return total, nil
}

func (r *MongoPostRepository) Close(ctx context.Context) error {
	return r.col.Database().Client().Disconnect(ctx)
}
