package stub

import (
	"context"

	"gachigage/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// seedFixtures fills the store and mission catalogues on first start. Seeding
// is idempotent: a non-empty table is left alone.
func seedFixtures(ctx context.Context, db *gorm.DB) error {
	var storeCount int64
	if err := db.WithContext(ctx).Model(&model.StubStoreModel{}).Count(&storeCount).Error; err != nil {
		return errors.Wrap(err, "failed to count stores")
	}
	if storeCount == 0 {
		if err := db.WithContext(ctx).Create(seedStores()).Error; err != nil {
			return errors.Wrap(err, "failed to seed stores")
		}
	}

	var missionCount int64
	if err := db.WithContext(ctx).Model(&model.StubMissionModel{}).Count(&missionCount).Error; err != nil {
		return errors.Wrap(err, "failed to count missions")
	}
	if missionCount == 0 {
		if err := db.WithContext(ctx).Create(seedMissions()).Error; err != nil {
			return errors.Wrap(err, "failed to seed missions")
		}
	}

	return nil
}

func seedStores() []model.StubStoreModel {
	return []model.StubStoreModel{
		{
			Name:         "슈니만두",
			Category:     "분식집",
			Neighborhood: "상계동",
			AddressRoad:  "서울 노원구 동일로 1413",
			AddressEx:    "6 4층, 5층",
			Phone:        "02-951-8292",
			Moods:        "혼밥 하기 편해요,메뉴가 다양해요,시끌벅적해요",
		},
		{
			Name:         "온수반",
			Category:     "한식당",
			Neighborhood: "상계동",
			AddressRoad:  "서울 노원구 상계로 41길 12",
			Phone:        "02-933-4821",
			Moods:        "가족과 가기 좋아요,아늑해요,조용해요",
		},
		{
			Name:         "브런치앤온",
			Category:     "커피 전문점",
			Neighborhood: "중계동",
			AddressRoad:  "서울 노원구 한글비석로 232",
			Phone:        "02-948-7710",
			Moods:        "데이트하기 좋아요,사진찍기 좋아요,트렌디해요",
		},
		{
			Name:         "한끼식당",
			Category:     "한식당",
			Neighborhood: "중계동",
			AddressRoad:  "서울 노원구 중계로 45",
			Phone:        "02-972-1055",
			Moods:        "혼밥 하기 편해요,조용해요",
		},
		{
			Name:         "달빛베이커리",
			Category:     "제과점·베이커리",
			Neighborhood: "하계동",
			AddressRoad:  "서울 노원구 한글비석로 12길 8",
			Phone:        "02-971-3302",
			Moods:        "아늑해요,오래 머물기 좋아요",
		},
		{
			Name:         "공릉서가",
			Category:     "커피 전문점",
			Neighborhood: "공릉동",
			AddressRoad:  "서울 노원구 공릉로 58",
			Phone:        "02-948-2211",
			Moods:        "책 읽기 좋아요,집중하기 좋아요,조용해요",
		},
		{
			Name:         "월계곱창",
			Category:     "호프집",
			Neighborhood: "월계동",
			AddressRoad:  "서울 노원구 월계로 310",
			Phone:        "02-917-6644",
			Moods:        "시끌벅적해요,활기찬 공간이에요",
		},
	}
}

func seedMissions() []model.StubMissionModel {
	return []model.StubMissionModel{
		{
			Title: "동네 분식집 방문하기",
			Body:  "우리 동네 분식집에서 식사하고 영수증으로 인증해 보세요.",
			Score: 30,
		},
		{
			Title:   "이번 주 착한가게 미션",
			Body:    "이번 주 선정된 착한가게를 방문하면 쿠폰을 드려요.",
			Score:   50,
			Special: true,
		},
		{
			Title: "동네 카페에서 커피 한 잔",
			Body:  "프랜차이즈가 아닌 동네 카페를 방문해 보세요.",
			Score: 30,
		},
		{
			Title: "동네 빵집 둘러보기",
			Body:  "동네 빵집에서 빵을 구매하고 인증해 보세요.",
			Score: 20,
		},
	}
}
